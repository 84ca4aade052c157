package commands

import (
	"fmt"
	"time"

	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
	"github.com/spf13/cobra"
)

// NewBlobstoresCommand creates the blobstores command group
func NewBlobstoresCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blobstores",
		Short: "Manage blobstores",
	}

	cmd.AddCommand(newDeleteBuildpackCachesCommand())

	return cmd
}

func newDeleteBuildpackCachesCommand() *cobra.Command {
	var (
		wait    bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "delete-buildpack-caches",
		Short: "Delete all buildpack caches",
		Long:  "Delete the buildpack caches of every app. The deletion runs as a background job.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			job, err := client.Blobstores().DeleteBuildpackCaches(ctx, cfv2.DeleteBlobstoreBuildpackCachesRequest{}).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to delete buildpack caches: %w", err)
			}

			err = waitForJob(cmd, client, job, wait, timeout)
			if err != nil {
				return err
			}

			if wait {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Buildpack caches deleted")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "wait for the deletion job to finish")
	cmd.Flags().DurationVar(&timeout, "timeout", constants.DefaultJobPollTimeout, "maximum time to wait")

	return cmd
}
