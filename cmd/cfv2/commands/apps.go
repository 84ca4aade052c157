package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewAppsCommand creates the apps command group
func NewAppsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apps",
		Aliases: []string{"app", "applications"},
		Short:   "Manage applications",
		Long:    "List, inspect, create, update and delete applications through the v2 API",
	}

	cmd.AddCommand(newAppsListCommand())
	cmd.AddCommand(newAppsGetCommand())
	cmd.AddCommand(newAppsCreateCommand())
	cmd.AddCommand(newAppsUpdateCommand())
	cmd.AddCommand(newAppsDeleteCommand())

	return cmd
}

func newAppsListCommand() *cobra.Command {
	var (
		paging   pageOptions
		names    []string
		spaceIDs []string
		orgIDs   []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			apps, err := listPage(ctx, &paging, func(ctx context.Context, page cfv2.PaginatedRequest) *cfapi.Future[cfv2.ListApplicationsResponse] {
				return client.ApplicationsV2().List(ctx, cfv2.ListApplicationsRequest{
					PaginatedRequest: page,
					Names:            cfv2.Filter(names...),
					SpaceIDs:         cfv2.Filter(spaceIDs...),
					OrganizationIDs:  cfv2.Filter(orgIDs...),
				})
			})
			if err != nil {
				return fmt.Errorf("failed to list applications: %w", err)
			}

			if isTableOutput() && len(apps.Resources) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No applications found")

				return nil
			}

			err = writeOutput(cmd.OutOrStdout(), apps.Resources, func(table *tablewriter.Table) {
				table.Header("GUID", "Name", "State", "Instances", "Memory MB", "Disk MB", "Space GUID")

				for _, app := range apps.Resources {
					_ = table.Append(
						app.Metadata.ID,
						app.Entity.Name,
						app.Entity.State,
						fmt.Sprintf("%d", app.Entity.Instances),
						fmt.Sprintf("%d", app.Entity.Memory),
						fmt.Sprintf("%d", app.Entity.DiskQuota),
						app.Entity.SpaceID,
					)
				}
			})
			if err != nil {
				return err
			}

			printPageHint(cmd, &paging, apps)

			return nil
		},
	}

	paging.register(cmd)
	cmd.Flags().StringSliceVar(&names, "name", nil, "filter by application name")
	cmd.Flags().StringSliceVar(&spaceIDs, "space-guid", nil, "filter by space GUID")
	cmd.Flags().StringSliceVar(&orgIDs, "org-guid", nil, "filter by organization GUID")

	return cmd
}

func newAppsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get APP_GUID",
		Short: "Get application details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			app, err := client.ApplicationsV2().Get(ctx, cfv2.GetApplicationRequest{ApplicationID: args[0]}).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to get application: %w", err)
			}

			return writeApplication(cmd, app)
		},
	}
}

func newAppsCreateCommand() *cobra.Command {
	var (
		spaceID   string
		stackID   string
		buildpack string
		command   string
		state     string
		memory    int
		instances int
		disk      int
		env       map[string]string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			request := cfv2.CreateApplicationRequest{
				Name:      args[0],
				SpaceID:   spaceID,
				StackID:   stackID,
				Buildpack: buildpack,
				Command:   command,
				State:     strings.ToUpper(state),
			}

			if cmd.Flags().Changed("memory") {
				request.Memory = cfv2.IntPtr(memory)
			}

			if cmd.Flags().Changed("instances") {
				request.Instances = cfv2.IntPtr(instances)
			}

			if cmd.Flags().Changed("disk") {
				request.DiskQuota = cfv2.IntPtr(disk)
			}

			if len(env) > 0 {
				request.EnvironmentJSON = make(map[string]interface{}, len(env))
				for key, value := range env {
					request.EnvironmentJSON[key] = value
				}
			}

			app, err := client.ApplicationsV2().Create(ctx, request).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to create application: %w", err)
			}

			return writeApplication(cmd, app)
		},
	}

	cmd.Flags().StringVar(&spaceID, "space-guid", "", "space GUID (required)")
	cmd.Flags().StringVar(&stackID, "stack-guid", "", "stack GUID")
	cmd.Flags().StringVar(&buildpack, "buildpack", "", "buildpack name or URL")
	cmd.Flags().StringVar(&command, "command", "", "start command")
	cmd.Flags().StringVar(&state, "state", "", "desired state (STARTED or STOPPED)")
	cmd.Flags().IntVar(&memory, "memory", 0, "memory per instance in MB")
	cmd.Flags().IntVar(&instances, "instances", 0, "number of instances")
	cmd.Flags().IntVar(&disk, "disk", 0, "disk quota in MB")
	cmd.Flags().StringToStringVar(&env, "env", nil, "environment variables (KEY=VALUE)")

	return cmd
}

func newAppsUpdateCommand() *cobra.Command {
	var (
		name      string
		state     string
		memory    int
		instances int
	)

	cmd := &cobra.Command{
		Use:   "update APP_GUID",
		Short: "Update an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			request := cfv2.UpdateApplicationRequest{
				ApplicationID: args[0],
				Name:          name,
				State:         strings.ToUpper(state),
			}

			if cmd.Flags().Changed("memory") {
				request.Memory = cfv2.IntPtr(memory)
			}

			if cmd.Flags().Changed("instances") {
				request.Instances = cfv2.IntPtr(instances)
			}

			app, err := client.ApplicationsV2().Update(ctx, request).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to update application: %w", err)
			}

			return writeApplication(cmd, app)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&state, "state", "", "desired state (STARTED or STOPPED)")
	cmd.Flags().IntVar(&memory, "memory", 0, "memory per instance in MB")
	cmd.Flags().IntVar(&instances, "instances", 0, "number of instances")

	return cmd
}

func newAppsDeleteCommand() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "delete APP_GUID",
		Short: "Delete an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			request := cfv2.DeleteApplicationRequest{ApplicationID: args[0]}
			if recursive {
				request.Recursive = cfv2.BoolPtr(true)
			}

			_, err = client.ApplicationsV2().Delete(ctx, request).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to delete application: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted application %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVar(&recursive, "recursive", false, "also delete service bindings and routes")

	return cmd
}

func writeApplication(cmd *cobra.Command, app *cfv2.ApplicationResource) error {
	return writeOutput(cmd.OutOrStdout(), app, func(table *tablewriter.Table) {
		table.Header("Property", "Value")
		_ = table.Append("GUID", app.Metadata.ID)
		_ = table.Append("Name", app.Entity.Name)
		_ = table.Append("State", app.Entity.State)
		_ = table.Append("Package State", valueOrNA(app.Entity.PackageState))
		_ = table.Append("Instances", fmt.Sprintf("%d", app.Entity.Instances))
		_ = table.Append("Memory MB", fmt.Sprintf("%d", app.Entity.Memory))
		_ = table.Append("Disk MB", fmt.Sprintf("%d", app.Entity.DiskQuota))
		_ = table.Append("Buildpack", stringPtrOrNA(app.Entity.Buildpack))
		_ = table.Append("Detected Buildpack", stringPtrOrNA(app.Entity.DetectedBuildpack))
		_ = table.Append("Docker Image", stringPtrOrNA(app.Entity.DockerImage))
		_ = table.Append("Health Check", valueOrNA(app.Entity.HealthCheckType))
		_ = table.Append("Space GUID", app.Entity.SpaceID)
		_ = table.Append("Stack GUID", valueOrNA(app.Entity.StackID))
		_ = table.Append("Created", formatTimestamp(app.Metadata.CreatedAt))
		_ = table.Append("Updated", formatTimestamp(app.Metadata.UpdatedAt))
	})
}
