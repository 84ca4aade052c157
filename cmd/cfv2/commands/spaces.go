package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewSpacesCommand creates the spaces command group
func NewSpacesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "spaces",
		Aliases: []string{"space"},
		Short:   "Manage spaces",
	}

	cmd.AddCommand(newSpacesListCommand())
	cmd.AddCommand(newSpacesGetCommand())
	cmd.AddCommand(newSpacesCreateCommand())
	cmd.AddCommand(newSpacesDeleteCommand())

	return cmd
}

func newSpacesListCommand() *cobra.Command {
	var (
		paging pageOptions
		names  []string
		orgIDs []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List spaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			spaces, err := listPage(ctx, &paging, func(ctx context.Context, page cfv2.PaginatedRequest) *cfapi.Future[cfv2.ListSpacesResponse] {
				return client.Spaces().List(ctx, cfv2.ListSpacesRequest{
					PaginatedRequest: page,
					Names:            cfv2.Filter(names...),
					OrganizationIDs:  cfv2.Filter(orgIDs...),
				})
			})
			if err != nil {
				return fmt.Errorf("failed to list spaces: %w", err)
			}

			if isTableOutput() && len(spaces.Resources) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No spaces found")

				return nil
			}

			err = writeOutput(cmd.OutOrStdout(), spaces.Resources, func(table *tablewriter.Table) {
				table.Header("GUID", "Name", "Organization GUID", "Allow SSH", "Created")

				for _, space := range spaces.Resources {
					_ = table.Append(
						space.Metadata.ID,
						space.Entity.Name,
						space.Entity.OrganizationID,
						fmt.Sprintf("%t", space.Entity.AllowSSH),
						formatTimestamp(space.Metadata.CreatedAt),
					)
				}
			})
			if err != nil {
				return err
			}

			printPageHint(cmd, &paging, spaces)

			return nil
		},
	}

	paging.register(cmd)
	cmd.Flags().StringSliceVar(&names, "name", nil, "filter by name")
	cmd.Flags().StringSliceVar(&orgIDs, "org-guid", nil, "filter by organization GUID")

	return cmd
}

func newSpacesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SPACE_GUID",
		Short: "Get space details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			space, err := client.Spaces().Get(ctx, cfv2.GetSpaceRequest{SpaceID: args[0]}).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to get space: %w", err)
			}

			return writeSpace(cmd, space)
		},
	}
}

func newSpacesCreateCommand() *cobra.Command {
	var (
		orgID    string
		allowSSH bool
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			request := cfv2.CreateSpaceRequest{
				Name:           args[0],
				OrganizationID: orgID,
			}

			if cmd.Flags().Changed("allow-ssh") {
				request.AllowSSH = cfv2.BoolPtr(allowSSH)
			}

			space, err := client.Spaces().Create(ctx, request).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to create space: %w", err)
			}

			return writeSpace(cmd, space)
		},
	}

	cmd.Flags().StringVar(&orgID, "org-guid", "", "organization GUID (required)")
	cmd.Flags().BoolVar(&allowSSH, "allow-ssh", true, "allow SSH to apps in the space")

	return cmd
}

func newSpacesDeleteCommand() *cobra.Command {
	var (
		recursive bool
		async     bool
		wait      bool
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "delete SPACE_GUID",
		Short: "Delete a space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			job, err := client.Spaces().Delete(ctx, cfv2.DeleteSpaceRequest{
				SpaceID:   args[0],
				Async:     cfv2.BoolPtr(async),
				Recursive: cfv2.BoolPtr(recursive),
			}).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to delete space: %w", err)
			}

			err = waitForJob(cmd, client, job, wait, timeout)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted space %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVar(&recursive, "recursive", false, "also delete apps, routes and service instances")
	cmd.Flags().BoolVar(&async, "async", true, "run the deletion as a background job")
	cmd.Flags().BoolVar(&wait, "wait", false, "wait for the deletion job to finish")
	cmd.Flags().DurationVar(&timeout, "timeout", constants.DefaultJobPollTimeout, "maximum time to wait")

	return cmd
}

func writeSpace(cmd *cobra.Command, space *cfv2.SpaceResource) error {
	return writeOutput(cmd.OutOrStdout(), space, func(table *tablewriter.Table) {
		table.Header("Property", "Value")
		_ = table.Append("GUID", space.Metadata.ID)
		_ = table.Append("Name", space.Entity.Name)
		_ = table.Append("Organization GUID", space.Entity.OrganizationID)
		_ = table.Append("Allow SSH", fmt.Sprintf("%t", space.Entity.AllowSSH))
		_ = table.Append("Space Quota GUID", stringPtrOrNA(space.Entity.SpaceQuotaID))
		_ = table.Append("Isolation Segment GUID", stringPtrOrNA(space.Entity.IsolationSegmentID))
		_ = table.Append("Created", formatTimestamp(space.Metadata.CreatedAt))
		_ = table.Append("Updated", formatTimestamp(space.Metadata.UpdatedAt))
	})
}
