package commands

import (
	"fmt"

	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfclient"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewInfoCommand creates the info command
func NewInfoCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Display API endpoint information",
		Long:  "Display information about the Cloud Foundry API endpoint from /v2/info. No login is needed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiEndpoint := viper.GetString("api")
			if apiEndpoint == "" {
				return constants.ErrNoAPIEndpointConfigured
			}

			info, err := cfclient.Discover(cmd.Context(), &cfapi.Config{
				APIEndpoint:   apiEndpoint,
				SkipTLSVerify: viper.GetBool("skip_ssl_validation"),
			})
			if err != nil {
				return fmt.Errorf("failed to get API info: %w", err)
			}

			supported, versionErr := cfclient.IsSupportedAPIVersion(info.APIVersion)
			if strict && (versionErr != nil || !supported) {
				return fmt.Errorf("%w: %s (minimum %s)", ErrUnsupportedAPIVersion, valueOrNA(info.APIVersion), constants.MinimumV2APIVersion)
			}

			return writeOutput(cmd.OutOrStdout(), info, func(table *tablewriter.Table) {
				fillInfoTable(table, info, supported && versionErr == nil)
			})
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when the API version is older than the supported minimum")

	return cmd
}

func fillInfoTable(table *tablewriter.Table, info *cfv2.GetInfoResponse, supported bool) {
	table.Header("Property", "Value")

	_ = table.Append("Name", valueOrNA(info.Name))
	_ = table.Append("Build", valueOrNA(info.Build))
	_ = table.Append("Version", fmt.Sprintf("%d", info.Version))
	_ = table.Append("Description", valueOrNA(info.Description))
	_ = table.Append("API Version", valueOrNA(info.APIVersion))
	_ = table.Append("Supported", fmt.Sprintf("%t", supported))
	_ = table.Append("Authorization Endpoint", valueOrNA(info.AuthorizationEndpoint))
	_ = table.Append("Token Endpoint", valueOrNA(info.TokenEndpoint))
	_ = table.Append("CLI Minimum", stringPtrOrNA(info.MinCLIVersion))
	_ = table.Append("CLI Recommended", stringPtrOrNA(info.MinRecommendedCLIVersion))
	_ = table.Append("OSBAPI Version", valueOrNA(info.OSBAPIVersion))
	_ = table.Append("Doppler Logging", valueOrNA(info.DopplerLoggingEndpoint))
	_ = table.Append("Routing", valueOrNA(info.RoutingEndpoint))
	_ = table.Append("App SSH", valueOrNA(info.AppSSHEndpoint))
	_ = table.Append("Support", valueOrNA(info.Support))
}
