package commands

import (
	"fmt"
	"time"

	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewJobsCommand creates the jobs command group
func NewJobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect background jobs",
		Long:  "Inspect and wait for v2 background jobs started by asynchronous deletes",
	}

	cmd.AddCommand(newJobsGetCommand())
	cmd.AddCommand(newJobsWaitCommand())

	return cmd
}

func newJobsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get JOB_GUID",
		Short: "Get job details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			job, err := client.Jobs().Get(ctx, cfv2.GetJobRequest{JobID: args[0]}).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to get job: %w", err)
			}

			return writeJob(cmd, job)
		},
	}
}

func newJobsWaitCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "wait JOB_GUID",
		Short: "Wait for a job to finish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			_, err = client.Jobs().WaitForCompletion(ctx, args[0], timeout).Await(ctx)
			if err != nil {
				return fmt.Errorf("job %s did not finish: %w", args[0], err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Job %s finished\n", args[0])

			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", constants.DefaultJobPollTimeout, "maximum time to wait")

	return cmd
}

func writeJob(cmd *cobra.Command, job *cfv2.JobResource) error {
	return writeOutput(cmd.OutOrStdout(), job, func(table *tablewriter.Table) {
		table.Header("Property", "Value")
		_ = table.Append("GUID", job.Entity.ID)
		_ = table.Append("Status", job.Entity.Status)
		_ = table.Append("Created", formatTimestamp(job.Metadata.CreatedAt))

		if job.Entity.ErrorDetails != nil {
			_ = table.Append("Error Code", job.Entity.ErrorDetails.ErrorCode)
			_ = table.Append("Error", job.Entity.ErrorDetails.Description)
		}
	})
}

// waitForJob waits for job when wait is set and the delete ran
// asynchronously. Synchronous deletes return an empty job.
func waitForJob(cmd *cobra.Command, client interface{ Jobs() cfv2.Jobs }, job *cfv2.JobResource, wait bool, timeout time.Duration) error {
	if job == nil || job.Entity.ID == "" {
		return nil
	}

	if !wait {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Job %s is %s. Use 'cfv2 jobs wait %s' to follow it.\n", job.Entity.ID, job.Entity.Status, job.Entity.ID)

		return nil
	}

	ctx := cmd.Context()

	_, err := client.Jobs().WaitForCompletion(ctx, job.Entity.ID, timeout).Await(ctx)
	if err != nil {
		return fmt.Errorf("job %s did not finish: %w", job.Entity.ID, err)
	}

	return nil
}
