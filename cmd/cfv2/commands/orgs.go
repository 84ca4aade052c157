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

// NewOrgsCommand creates the organizations command group
func NewOrgsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orgs",
		Aliases: []string{"org", "organizations"},
		Short:   "Manage organizations",
	}

	cmd.AddCommand(newOrgsListCommand())
	cmd.AddCommand(newOrgsGetCommand())
	cmd.AddCommand(newOrgsCreateCommand())
	cmd.AddCommand(newOrgsDeleteCommand())

	return cmd
}

func newOrgsListCommand() *cobra.Command {
	var (
		paging   pageOptions
		names    []string
		statuses []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			orgs, err := listPage(ctx, &paging, func(ctx context.Context, page cfv2.PaginatedRequest) *cfapi.Future[cfv2.ListOrganizationsResponse] {
				return client.Organizations().List(ctx, cfv2.ListOrganizationsRequest{
					PaginatedRequest: page,
					Names:            cfv2.Filter(names...),
					Statuses:         cfv2.Filter(statuses...),
				})
			})
			if err != nil {
				return fmt.Errorf("failed to list organizations: %w", err)
			}

			if isTableOutput() && len(orgs.Resources) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No organizations found")

				return nil
			}

			err = writeOutput(cmd.OutOrStdout(), orgs.Resources, func(table *tablewriter.Table) {
				table.Header("GUID", "Name", "Status", "Quota GUID", "Created")

				for _, org := range orgs.Resources {
					_ = table.Append(
						org.Metadata.ID,
						org.Entity.Name,
						org.Entity.Status,
						valueOrNA(org.Entity.QuotaDefinitionID),
						formatTimestamp(org.Metadata.CreatedAt),
					)
				}
			})
			if err != nil {
				return err
			}

			printPageHint(cmd, &paging, orgs)

			return nil
		},
	}

	paging.register(cmd)
	cmd.Flags().StringSliceVar(&names, "name", nil, "filter by name")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "filter by status (active, suspended)")

	return cmd
}

func newOrgsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ORG_GUID",
		Short: "Get organization details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			org, err := client.Organizations().Get(ctx, cfv2.GetOrganizationRequest{OrganizationID: args[0]}).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to get organization: %w", err)
			}

			return writeOrganization(cmd, org)
		},
	}
}

func newOrgsCreateCommand() *cobra.Command {
	var (
		quotaID string
		status  string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			org, err := client.Organizations().Create(ctx, cfv2.CreateOrganizationRequest{
				Name:              args[0],
				QuotaDefinitionID: quotaID,
				Status:            status,
			}).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to create organization: %w", err)
			}

			return writeOrganization(cmd, org)
		},
	}

	cmd.Flags().StringVar(&quotaID, "quota-guid", "", "quota definition GUID")
	cmd.Flags().StringVar(&status, "status", "", "status (active, suspended)")

	return cmd
}

func newOrgsDeleteCommand() *cobra.Command {
	var (
		recursive bool
		async     bool
		wait      bool
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "delete ORG_GUID",
		Short: "Delete an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			job, err := client.Organizations().Delete(ctx, cfv2.DeleteOrganizationRequest{
				OrganizationID: args[0],
				Async:          cfv2.BoolPtr(async),
				Recursive:      cfv2.BoolPtr(recursive),
			}).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to delete organization: %w", err)
			}

			err = waitForJob(cmd, client, job, wait, timeout)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted organization %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVar(&recursive, "recursive", false, "also delete spaces, apps and service instances")
	cmd.Flags().BoolVar(&async, "async", true, "run the deletion as a background job")
	cmd.Flags().BoolVar(&wait, "wait", false, "wait for the deletion job to finish")
	cmd.Flags().DurationVar(&timeout, "timeout", constants.DefaultJobPollTimeout, "maximum time to wait")

	return cmd
}

func writeOrganization(cmd *cobra.Command, org *cfv2.OrganizationResource) error {
	return writeOutput(cmd.OutOrStdout(), org, func(table *tablewriter.Table) {
		table.Header("Property", "Value")
		_ = table.Append("GUID", org.Metadata.ID)
		_ = table.Append("Name", org.Entity.Name)
		_ = table.Append("Status", org.Entity.Status)
		_ = table.Append("Billing Enabled", fmt.Sprintf("%t", org.Entity.BillingEnabled))
		_ = table.Append("Quota GUID", valueOrNA(org.Entity.QuotaDefinitionID))
		_ = table.Append("Isolation Segment GUID", valueOrNA(org.Entity.DefaultIsolationSegmentID))
		_ = table.Append("Created", formatTimestamp(org.Metadata.CreatedAt))
		_ = table.Append("Updated", formatTimestamp(org.Metadata.UpdatedAt))
	})
}
