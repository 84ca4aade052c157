package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fivetwenty-io/cfv2-client/internal/auth"
	"github.com/fivetwenty-io/cfv2-client/internal/client"
	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		username     string
		password     string
		clientID     string
		clientSecret string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Cloud Foundry",
		Long: `Authenticate with a Cloud Foundry API endpoint.

The UAA endpoint is discovered from /v2/info. Use --client-id and
--client-secret for the client credentials grant, otherwise the password
grant is used and missing values are prompted for.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reader := bufio.NewReader(cmd.InOrStdin())

			apiEndpoint := viper.GetString("api")
			if apiEndpoint == "" {
				apiEndpoint = prompt(cmd.OutOrStdout(), reader, "API endpoint: ")
			}

			if apiEndpoint == "" {
				return ErrAPIEndpointRequired
			}

			apiEndpoint = cfclient.NormalizeEndpoint(apiEndpoint)
			skipSSL := viper.GetBool("skip_ssl_validation")

			info, err := cfclient.Discover(ctx, &cfapi.Config{
				APIEndpoint:   apiEndpoint,
				SkipTLSVerify: skipSSL,
			})
			if err != nil {
				return fmt.Errorf("failed to connect to API: %w", err)
			}

			uaaEndpoint := strings.TrimSuffix(info.TokenEndpoint, "/")
			if uaaEndpoint == "" {
				return constants.ErrNoUAAEndpoint
			}

			oauth2Config := &auth.OAuth2Config{
				TokenURL: uaaEndpoint + "/oauth/token",
			}

			if clientID != "" && clientSecret != "" {
				oauth2Config.ClientID = clientID
				oauth2Config.ClientSecret = clientSecret
			} else {
				if username == "" {
					username = prompt(cmd.OutOrStdout(), reader, "Username: ")
				}

				if username == "" {
					return ErrUsernameRequired
				}

				if password == "" {
					password, err = readPassword(cmd.OutOrStdout(), reader)
					if err != nil {
						return err
					}
				}

				oauth2Config.ClientID = constants.DefaultCFClientID
				oauth2Config.Username = username
				oauth2Config.Password = password
			}

			if skipSSL {
				httpClient, err := client.NewTransport(&cfapi.Config{SkipTLSVerify: true})
				if err != nil {
					return err
				}

				oauth2Config.HTTPClient = httpClient
			}

			manager := auth.NewOAuth2TokenManager(oauth2Config)

			_, err = manager.GetToken(ctx)
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			token := manager.CurrentToken()

			config := loadConfig()
			config.API = apiEndpoint
			config.UAAEndpoint = uaaEndpoint
			config.SkipSSLValidation = skipSSL
			config.Token = token.AccessToken
			config.RefreshToken = token.RefreshToken
			config.TokenExpiresAt = nil
			config.Username = username
			config.ClientID = ""
			config.ClientSecret = ""

			if !token.ExpiresAt.IsZero() {
				expiresAt := token.ExpiresAt
				config.TokenExpiresAt = &expiresAt
			}

			// Client credentials cannot be refreshed, so the secret is kept.
			if oauth2Config.ClientSecret != "" {
				config.ClientID = clientID
				config.ClientSecret = clientSecret
				config.Username = ""
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Logged in to %s\n", apiEndpoint)
			_, _ = fmt.Fprintf(out, "  UAA: %s\n", uaaEndpoint)
			_, _ = fmt.Fprintf(out, "  API version: %s\n", valueOrNA(info.APIVersion))

			if supported, err := cfclient.IsSupportedAPIVersion(info.APIVersion); err == nil && !supported {
				_, _ = fmt.Fprintf(out, "Warning: API version %s is older than %s\n", info.APIVersion, constants.MinimumV2APIVersion)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth client ID for the client credentials grant")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth client secret for the client credentials grant")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from Cloud Foundry",
		Long:  "Remove the stored tokens and client secret from the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.Token = ""
			config.RefreshToken = ""
			config.TokenExpiresAt = nil
			config.LastRefreshed = nil
			config.ClientSecret = ""

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

			return nil
		},
	}
}

func prompt(out io.Writer, reader *bufio.Reader, label string) string {
	_, _ = fmt.Fprint(out, label)

	value, _ := reader.ReadString('\n')

	return strings.TrimSpace(value)
}

// readPassword reads without echo from a terminal and falls back to a plain
// line read otherwise.
func readPassword(out io.Writer, reader *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return prompt(out, reader, "Password: "), nil
	}

	_, _ = fmt.Fprint(out, "Password: ")

	bytePassword, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	_, _ = fmt.Fprintln(out)

	return string(bytePassword), nil
}
