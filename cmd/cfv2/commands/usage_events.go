package commands

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewAppUsageEventsCommand creates the app usage events command group
func NewAppUsageEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "app-usage-events",
		Aliases: []string{"app-usage", "aue"},
		Short:   "Manage application usage events",
		Long:    "View and manage application usage events for monitoring and billing",
	}

	cmd.AddCommand(newAppUsageEventsListCommand())
	cmd.AddCommand(newAppUsageEventsGetCommand())
	cmd.AddCommand(newPurgeAndReseedCommand("app usage events", func(ctx context.Context, client usageEventsClient) error {
		_, err := client.ApplicationUsageEvents().PurgeAndReseed(ctx, cfv2.PurgeAndReseedApplicationUsageEventsRequest{}).Await(ctx)

		return err
	}))

	return cmd
}

// NewServiceUsageEventsCommand creates the service usage events command group
func NewServiceUsageEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "service-usage-events",
		Aliases: []string{"service-usage", "sue"},
		Short:   "Manage service usage events",
		Long:    "View and manage service usage events for monitoring and billing",
	}

	cmd.AddCommand(newServiceUsageEventsListCommand())
	cmd.AddCommand(newServiceUsageEventsGetCommand())
	cmd.AddCommand(newPurgeAndReseedCommand("service usage events", func(ctx context.Context, client usageEventsClient) error {
		_, err := client.ServiceUsageEvents().PurgeAndReseed(ctx, cfv2.PurgeAndReseedServiceUsageEventsRequest{}).Await(ctx)

		return err
	}))

	return cmd
}

type usageEventsClient interface {
	ApplicationUsageEvents() cfv2.ApplicationUsageEvents
	ServiceUsageEvents() cfv2.ServiceUsageEvents
}

// listUsageEvents walks pages sequentially with --all, following next_url,
// since event lists keep growing while they are read.
func listUsageEvents[R any](ctx context.Context, opts *pageOptions, fetch func(context.Context, cfv2.PaginatedRequest) *cfapi.Future[cfv2.PaginatedResponse[R]]) ([]R, int, error) {
	base := opts.request()

	if !opts.all {
		response, err := fetch(ctx, base).Await(ctx)
		if err != nil {
			return nil, 0, err
		}

		return response.Resources, response.TotalPages, nil
	}

	iterator := cfv2.NewPageIterator(ctx, func(ctx context.Context, page int) *cfapi.Future[cfv2.PaginatedResponse[R]] {
		return fetch(ctx, base.WithPage(page))
	})

	events, err := iterator.All()
	if err != nil {
		return nil, 0, err
	}

	return events, iterator.TotalPages(), nil
}

func newAppUsageEventsListCommand() *cobra.Command {
	var (
		paging    pageOptions
		afterGUID string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List application usage events",
		Long:  "List application usage events, optionally only those after a given event",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			events, totalPages, err := listUsageEvents(ctx, &paging, func(ctx context.Context, page cfv2.PaginatedRequest) *cfapi.Future[cfv2.ListApplicationUsageEventsResponse] {
				return client.ApplicationUsageEvents().List(ctx, cfv2.ListApplicationUsageEventsRequest{
					PaginatedRequest:             page,
					AfterApplicationUsageEventID: afterGUID,
				})
			})
			if err != nil {
				return fmt.Errorf("failed to list app usage events: %w", err)
			}

			if isTableOutput() && len(events) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No app usage events found")

				return nil
			}

			err = writeOutput(cmd.OutOrStdout(), events, func(table *tablewriter.Table) {
				table.Header("GUID", "App Name", "Space", "State", "Instances", "Memory MB", "Created")

				for _, event := range events {
					_ = table.Append(
						event.Metadata.ID,
						event.Entity.ApplicationName,
						event.Entity.SpaceName,
						fmt.Sprintf("%s -> %s", stringPtrOrNA(event.Entity.PreviousState), event.Entity.State),
						fmt.Sprintf("%d", event.Entity.InstanceCount),
						fmt.Sprintf("%d", event.Entity.MemoryInMBPerInstance),
						formatTimestamp(event.Metadata.CreatedAt),
					)
				}
			})
			if err != nil {
				return err
			}

			printPageHint(cmd, &paging, &cfv2.PaginatedResponse[cfv2.ApplicationUsageEventResource]{TotalPages: totalPages})

			return nil
		},
	}

	paging.register(cmd)
	cmd.Flags().StringVar(&afterGUID, "after-guid", "", "return events after this event GUID")

	return cmd
}

func newAppUsageEventsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get EVENT_GUID",
		Short: "Get app usage event details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			event, err := client.ApplicationUsageEvents().Get(ctx, cfv2.GetApplicationUsageEventRequest{ApplicationUsageEventID: args[0]}).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to get app usage event: %w", err)
			}

			return writeOutput(cmd.OutOrStdout(), event, func(table *tablewriter.Table) {
				entity := event.Entity

				table.Header("Property", "Value")
				_ = table.Append("GUID", event.Metadata.ID)
				_ = table.Append("Created", formatTimestamp(event.Metadata.CreatedAt))
				_ = table.Append("State", entity.State)
				_ = table.Append("Previous State", stringPtrOrNA(entity.PreviousState))
				_ = table.Append("App", fmt.Sprintf("%s (%s)", entity.ApplicationName, entity.ApplicationID))
				_ = table.Append("Space", fmt.Sprintf("%s (%s)", entity.SpaceName, entity.SpaceID))
				_ = table.Append("Organization GUID", entity.OrganizationID)
				_ = table.Append("Instances", fmt.Sprintf("%d", entity.InstanceCount))
				_ = table.Append("Memory MB", fmt.Sprintf("%d", entity.MemoryInMBPerInstance))
				_ = table.Append("Buildpack", stringPtrOrNA(entity.BuildpackName))
				_ = table.Append("Process Type", valueOrNA(entity.ProcessType))
				_ = table.Append("Task", stringPtrOrNA(entity.TaskName))
			})
		},
	}
}

func newServiceUsageEventsListCommand() *cobra.Command {
	var (
		paging        pageOptions
		afterGUID     string
		instanceTypes []string
		serviceIDs    []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List service usage events",
		Long:  "List service usage events, optionally filtered by instance type or service",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			events, totalPages, err := listUsageEvents(ctx, &paging, func(ctx context.Context, page cfv2.PaginatedRequest) *cfapi.Future[cfv2.ListServiceUsageEventsResponse] {
				return client.ServiceUsageEvents().List(ctx, cfv2.ListServiceUsageEventsRequest{
					PaginatedRequest:         page,
					AfterServiceUsageEventID: afterGUID,
					ServiceInstanceTypes:     cfv2.Filter(instanceTypes...),
					ServiceIDs:               cfv2.Filter(serviceIDs...),
				})
			})
			if err != nil {
				return fmt.Errorf("failed to list service usage events: %w", err)
			}

			if isTableOutput() && len(events) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No service usage events found")

				return nil
			}

			err = writeOutput(cmd.OutOrStdout(), events, func(table *tablewriter.Table) {
				table.Header("GUID", "Instance", "Type", "Service", "Plan", "State", "Created")

				for _, event := range events {
					_ = table.Append(
						event.Metadata.ID,
						event.Entity.ServiceInstanceName,
						event.Entity.ServiceInstanceType,
						valueOrNA(event.Entity.ServiceLabel),
						valueOrNA(event.Entity.ServicePlanName),
						event.Entity.State,
						formatTimestamp(event.Metadata.CreatedAt),
					)
				}
			})
			if err != nil {
				return err
			}

			printPageHint(cmd, &paging, &cfv2.PaginatedResponse[cfv2.ServiceUsageEventResource]{TotalPages: totalPages})

			return nil
		},
	}

	paging.register(cmd)
	cmd.Flags().StringVar(&afterGUID, "after-guid", "", "return events after this event GUID")
	cmd.Flags().StringSliceVar(&instanceTypes, "service-instance-type", nil, "filter by instance type (managed_service_instance, user_provided_service_instance)")
	cmd.Flags().StringSliceVar(&serviceIDs, "service-guid", nil, "filter by service GUID")

	return cmd
}

func newServiceUsageEventsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get EVENT_GUID",
		Short: "Get service usage event details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			event, err := client.ServiceUsageEvents().Get(ctx, cfv2.GetServiceUsageEventRequest{ServiceUsageEventID: args[0]}).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to get service usage event: %w", err)
			}

			return writeOutput(cmd.OutOrStdout(), event, func(table *tablewriter.Table) {
				entity := event.Entity

				table.Header("Property", "Value")
				_ = table.Append("GUID", event.Metadata.ID)
				_ = table.Append("Created", formatTimestamp(event.Metadata.CreatedAt))
				_ = table.Append("State", entity.State)
				_ = table.Append("Instance", fmt.Sprintf("%s (%s)", entity.ServiceInstanceName, entity.ServiceInstanceID))
				_ = table.Append("Instance Type", entity.ServiceInstanceType)
				_ = table.Append("Space", fmt.Sprintf("%s (%s)", entity.SpaceName, entity.SpaceID))
				_ = table.Append("Organization GUID", entity.OrganizationID)
				_ = table.Append("Service", valueOrNA(entity.ServiceLabel))
				_ = table.Append("Plan", valueOrNA(entity.ServicePlanName))
				_ = table.Append("Broker", valueOrNA(entity.ServiceBrokerName))
			})
		},
	}
}

func newPurgeAndReseedCommand(what string, purge func(context.Context, usageEventsClient) error) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "purge-and-reseed",
		Short: "Purge all " + what + " and reseed from the current state",
		Long: "Destroy every existing " + what + " and create one event per existing resource.\n" +
			"Billing systems reading the events will see the history disappear.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return ErrConfirmationRequired
			}

			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = purge(ctx, client)
			if err != nil {
				return fmt.Errorf("failed to purge and reseed %s: %w", what, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Purged and reseeded %s\n", what)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "confirm the destructive purge")

	return cmd
}
