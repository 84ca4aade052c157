package commands

import (
	"fmt"

	"github.com/fivetwenty-io/cfv2-client/pkg/uaa"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewIdentityZonesCommand creates the identity zones command group
func NewIdentityZonesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "identity-zones",
		Aliases: []string{"zones", "iz"},
		Short:   "Manage UAA identity zones",
		Long:    "Manage UAA identity zones. Requires a token with zones.write or uaa.admin.",
	}

	cmd.AddCommand(newIdentityZonesListCommand())
	cmd.AddCommand(newIdentityZonesGetCommand())
	cmd.AddCommand(newIdentityZonesCreateCommand())
	cmd.AddCommand(newIdentityZonesUpdateCommand())
	cmd.AddCommand(newIdentityZonesDeleteCommand())

	return cmd
}

func newIdentityZonesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List identity zones",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			zones, err := client.IdentityZones().List(ctx, uaa.ListIdentityZonesRequest{}).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to list identity zones: %w", err)
			}

			return writeOutput(cmd.OutOrStdout(), zones, func(table *tablewriter.Table) {
				table.Header("ID", "Subdomain", "Name", "Active", "Version")

				for _, zone := range *zones {
					_ = table.Append(
						zone.ID,
						zone.Subdomain,
						zone.Name,
						boolPtrString(zone.Active),
						fmt.Sprintf("%d", zone.Version),
					)
				}
			})
		},
	}
}

func newIdentityZonesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ZONE_ID",
		Short: "Get identity zone details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			zone, err := client.IdentityZones().Get(ctx, uaa.GetIdentityZoneRequest{IdentityZoneID: args[0]}).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to get identity zone: %w", err)
			}

			return writeIdentityZone(cmd, zone)
		},
	}
}

func newIdentityZonesCreateCommand() *cobra.Command {
	var (
		id          string
		name        string
		description string
		inactive    bool
	)

	cmd := &cobra.Command{
		Use:   "create SUBDOMAIN",
		Short: "Create an identity zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			if name == "" {
				name = args[0]
			}

			active := !inactive

			zone, err := client.IdentityZones().Create(ctx, uaa.CreateIdentityZoneRequest{
				IdentityZoneID: id,
				Subdomain:      args[0],
				Name:           name,
				Description:    description,
				Active:         &active,
			}).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to create identity zone: %w", err)
			}

			return writeIdentityZone(cmd, zone)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "zone ID (defaults to a generated one)")
	cmd.Flags().StringVar(&name, "name", "", "zone name (defaults to the subdomain)")
	cmd.Flags().StringVar(&description, "description", "", "zone description")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "create the zone deactivated")

	return cmd
}

func newIdentityZonesUpdateCommand() *cobra.Command {
	var (
		name        string
		subdomain   string
		description string
		active      bool
	)

	cmd := &cobra.Command{
		Use:   "update ZONE_ID",
		Short: "Update an identity zone",
		Long:  "Update an identity zone. Unset flags keep the zone's current values.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			current, err := client.IdentityZones().Get(ctx, uaa.GetIdentityZoneRequest{IdentityZoneID: args[0]}).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to get identity zone: %w", err)
			}

			request := uaa.UpdateIdentityZoneRequest{
				IdentityZoneID: current.ID,
				Subdomain:      current.Subdomain,
				Name:           current.Name,
				Description:    current.Description,
				Version:        &current.Version,
				Active:         current.Active,
				Configuration:  current.Configuration,
			}

			if cmd.Flags().Changed("name") {
				request.Name = name
			}

			if cmd.Flags().Changed("subdomain") {
				request.Subdomain = subdomain
			}

			if cmd.Flags().Changed("description") {
				request.Description = description
			}

			if cmd.Flags().Changed("active") {
				request.Active = &active
			}

			zone, err := client.IdentityZones().Update(ctx, request).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to update identity zone: %w", err)
			}

			return writeIdentityZone(cmd, zone)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "zone name")
	cmd.Flags().StringVar(&subdomain, "subdomain", "", "zone subdomain")
	cmd.Flags().StringVar(&description, "description", "", "zone description")
	cmd.Flags().BoolVar(&active, "active", true, "whether the zone is active")

	return cmd
}

func newIdentityZonesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ZONE_ID",
		Short: "Delete an identity zone",
		Long:  "Delete an identity zone and every user, client and provider in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return ErrConfirmationRequired
			}

			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			zone, err := client.IdentityZones().Delete(ctx, uaa.DeleteIdentityZoneRequest{IdentityZoneID: args[0]}).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to delete identity zone: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted identity zone %s (%s)\n", zone.ID, zone.Subdomain)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "confirm the deletion")

	return cmd
}

func writeIdentityZone(cmd *cobra.Command, zone *uaa.IdentityZone) error {
	return writeOutput(cmd.OutOrStdout(), zone, func(table *tablewriter.Table) {
		table.Header("Property", "Value")
		_ = table.Append("ID", zone.ID)
		_ = table.Append("Subdomain", zone.Subdomain)
		_ = table.Append("Name", zone.Name)
		_ = table.Append("Description", valueOrNA(zone.Description))
		_ = table.Append("Active", boolPtrString(zone.Active))
		_ = table.Append("Version", fmt.Sprintf("%d", zone.Version))
		_ = table.Append("Created", formatMillis(zone.CreatedAt))
		_ = table.Append("Last Modified", formatMillis(zone.LastModified))

		if zone.Configuration != nil {
			_ = table.Append("Issuer", valueOrNA(zone.Configuration.Issuer))
		}
	})
}
