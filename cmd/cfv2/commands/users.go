package commands

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	"github.com/fivetwenty-io/cfv2-client/pkg/uaa"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// zoneFlags selects the identity zone user requests run against.
type zoneFlags struct {
	zoneID        string
	zoneSubdomain string
}

func (z *zoneFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&z.zoneID, "zone-id", "", "run against this identity zone ID")
	cmd.Flags().StringVar(&z.zoneSubdomain, "zone-subdomain", "", "run against this identity zone subdomain")
}

func (z *zoneFlags) zoned() uaa.IdentityZoned {
	return uaa.IdentityZoned{
		IdentityZoneID:        z.zoneID,
		IdentityZoneSubdomain: z.zoneSubdomain,
	}
}

// NewUsersCommand creates the UAA users command group
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage UAA users",
		Long:    "Manage UAA SCIM users, optionally inside another identity zone",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())
	cmd.AddCommand(newUsersCreateCommand())
	cmd.AddCommand(newUsersDeleteCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	var (
		zone       zoneFlags
		filter     string
		sortBy     string
		sortOrder  string
		startIndex int
		count      int
		attributes []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Long:  `List users. --filter takes a SCIM filter, for example 'userName eq "alice"'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			request := uaa.ListUsersRequest{
				IdentityZoned: zone.zoned(),
				Filter:        filter,
				SortBy:        sortBy,
				SortOrder:     uaa.SortOrder(sortOrder),
				Attributes:    attributes,
			}

			if cmd.Flags().Changed("start-index") {
				request.StartIndex = &startIndex
			}

			if cmd.Flags().Changed("count") {
				request.Count = &count
			}

			users, err := client.Users().List(ctx, request).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			err = writeOutput(cmd.OutOrStdout(), users, func(table *tablewriter.Table) {
				table.Header("ID", "User Name", "Origin", "Email", "Active", "Verified")

				for _, user := range users.Resources {
					_ = table.Append(
						user.ID,
						user.UserName,
						valueOrNA(user.Origin),
						primaryEmail(user),
						boolPtrString(user.Active),
						boolPtrString(user.Verified),
					)
				}
			})
			if err != nil {
				return err
			}

			if isTableOutput() && users.TotalResults > len(users.Resources) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %d users from index %d.\n", len(users.Resources), users.TotalResults, users.StartIndex)
			}

			return nil
		},
	}

	zone.register(cmd)
	cmd.Flags().StringVar(&filter, "filter", "", "SCIM filter expression")
	cmd.Flags().StringVar(&sortBy, "sort-by", "", "attribute to sort by")
	cmd.Flags().StringVar(&sortOrder, "sort-order", "", "ascending or descending")
	cmd.Flags().IntVar(&startIndex, "start-index", 1, "index of the first result")
	cmd.Flags().IntVar(&count, "count", 0, "maximum number of results")
	cmd.Flags().StringSliceVar(&attributes, "attributes", nil, "attributes to return")

	return cmd
}

func newUsersGetCommand() *cobra.Command {
	var zone zoneFlags

	cmd := &cobra.Command{
		Use:   "get USER_ID",
		Short: "Get user details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			user, err := client.Users().Get(ctx, uaa.GetUserRequest{IdentityZoned: zone.zoned(), UserID: args[0]}).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			return writeUser(cmd, user)
		},
	}

	zone.register(cmd)

	return cmd
}

func newUsersCreateCommand() *cobra.Command {
	var (
		zone       zoneFlags
		password   string
		email      string
		givenName  string
		familyName string
		origin     string
	)

	cmd := &cobra.Command{
		Use:   "create USERNAME",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			request := uaa.CreateUserRequest{
				IdentityZoned: zone.zoned(),
				UserName:      args[0],
				Password:      password,
				Origin:        origin,
			}

			if email != "" {
				request.Emails = []uaa.Email{{Value: email, Primary: true}}
			}

			if givenName != "" || familyName != "" {
				request.Name = &uaa.Name{GivenName: givenName, FamilyName: familyName}
			}

			user, err := client.Users().Create(ctx, request).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			return writeUser(cmd, user)
		},
	}

	zone.register(cmd)
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&email, "email", "", "primary email address")
	cmd.Flags().StringVar(&givenName, "given-name", "", "given name")
	cmd.Flags().StringVar(&familyName, "family-name", "", "family name")
	cmd.Flags().StringVar(&origin, "origin", "", "identity provider origin (default uaa)")

	return cmd
}

func newUsersDeleteCommand() *cobra.Command {
	var (
		zone    zoneFlags
		version string
	)

	cmd := &cobra.Command{
		Use:   "delete USER_ID",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			user, err := client.Users().Delete(ctx, uaa.DeleteUserRequest{
				IdentityZoned: zone.zoned(),
				UserID:        args[0],
				Version:       version,
			}).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to delete user: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %s (%s)\n", user.UserName, user.ID)

			return nil
		},
	}

	zone.register(cmd)
	cmd.Flags().StringVar(&version, "version", "", "expected user version (If-Match); any version when empty")

	return cmd
}

func writeUser(cmd *cobra.Command, user *uaa.User) error {
	return writeOutput(cmd.OutOrStdout(), user, func(table *tablewriter.Table) {
		table.Header("Property", "Value")
		_ = table.Append("ID", user.ID)
		_ = table.Append("User Name", user.UserName)
		_ = table.Append("Name", fullName(user))
		_ = table.Append("Email", primaryEmail(*user))
		_ = table.Append("Origin", valueOrNA(user.Origin))
		_ = table.Append("Zone ID", valueOrNA(user.ZoneID))
		_ = table.Append("Active", boolPtrString(user.Active))
		_ = table.Append("Verified", boolPtrString(user.Verified))
		_ = table.Append("Groups", fmt.Sprintf("%d", len(user.Groups)))
		_ = table.Append("Last Logon", formatMillis(user.LastLogonTime))

		if user.Meta != nil {
			_ = table.Append("Version", fmt.Sprintf("%d", user.Meta.Version))
		}
	})
}

func primaryEmail(user uaa.User) string {
	for _, email := range user.Emails {
		if email.Primary {
			return email.Value
		}
	}

	if len(user.Emails) > 0 {
		return user.Emails[0].Value
	}

	return constants.NotAvailable
}

func fullName(user *uaa.User) string {
	if user.Name == nil {
		return constants.NotAvailable
	}

	return valueOrNA(strings.TrimSpace(user.Name.GivenName + " " + user.Name.FamilyName))
}
