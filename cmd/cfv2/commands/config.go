package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fivetwenty-io/cfv2-client/internal/auth"
	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ConfigDirName is the directory under $HOME holding the CLI configuration.
const ConfigDirName = ".cfv2"

// Config is the persisted CLI configuration.
type Config struct {
	API               string     `json:"api,omitempty"                 yaml:"api,omitempty"`
	UAAEndpoint       string     `json:"uaa_endpoint,omitempty"        yaml:"uaa_endpoint,omitempty"`
	Token             string     `json:"token,omitempty"               yaml:"token,omitempty"`
	RefreshToken      string     `json:"refresh_token,omitempty"       yaml:"refresh_token,omitempty"`
	TokenExpiresAt    *time.Time `json:"token_expires_at,omitempty"    yaml:"token_expires_at,omitempty"`
	LastRefreshed     *time.Time `json:"last_refreshed,omitempty"      yaml:"last_refreshed,omitempty"`
	Username          string     `json:"username,omitempty"            yaml:"username,omitempty"`
	ClientID          string     `json:"client_id,omitempty"           yaml:"client_id,omitempty"`
	ClientSecret      string     `json:"client_secret,omitempty"       yaml:"client_secret,omitempty"`
	SkipSSLValidation bool       `json:"skip_ssl_validation,omitempty" yaml:"skip_ssl_validation,omitempty"`
	Output            string     `json:"output,omitempty"              yaml:"output,omitempty"`

	// Collector is kept as read so that saving the file does not drop it.
	Collector map[string]interface{} `json:"collector,omitempty" yaml:"collector,omitempty"`
}

// settableKeys are the keys accepted by 'cfv2 config set'.
var settableKeys = []string{"api", "uaa_endpoint", "client_id", "client_secret", "output", "skip_ssl_validation", "username"}

func loadConfig() *Config {
	config := &Config{
		API:               viper.GetString("api"),
		UAAEndpoint:       viper.GetString("uaa_endpoint"),
		Token:             viper.GetString("token"),
		RefreshToken:      viper.GetString("refresh_token"),
		Username:          viper.GetString("username"),
		ClientID:          viper.GetString("client_id"),
		ClientSecret:      viper.GetString("client_secret"),
		SkipSSLValidation: viper.GetBool("skip_ssl_validation"),
		Output:            viper.GetString("output"),
		Collector:         viper.GetStringMap("collector"),
	}

	if expiresAt := viper.GetTime("token_expires_at"); !expiresAt.IsZero() {
		config.TokenExpiresAt = &expiresAt
	}

	if refreshed := viper.GetTime("last_refreshed"); !refreshed.IsZero() {
		config.LastRefreshed = &refreshed
	}

	if len(config.Collector) == 0 {
		config.Collector = nil
	}

	return config
}

// configFilePath returns the file in use, or ~/.cfv2/config.yml, creating
// its directory when needed.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, ConfigDirName)

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.yml"), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Keep viper in sync for the rest of the process.
	viper.SetConfigFile(configFile)

	err = viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("failed to reload config file: %w", err)
	}

	return nil
}

// buildClientConfig maps the CLI configuration onto a client configuration.
func buildClientConfig(config *Config) *cfapi.Config {
	clientConfig := &cfapi.Config{
		APIEndpoint:   config.API,
		UAAEndpoint:   config.UAAEndpoint,
		SkipTLSVerify: config.SkipSSLValidation,
		Username:      config.Username,
		ClientID:      config.ClientID,
		ClientSecret:  config.ClientSecret,
		RefreshToken:  config.RefreshToken,
		AccessToken:   config.Token,
		UserAgent:     "cfv2-cli",
		Logger:        cfapi.NewZerologLogger(newLogger(os.Stderr)),
		Debug:         viper.GetBool("verbose"),
	}

	if config.UAAEndpoint != "" {
		clientConfig.TokenURL = strings.TrimSuffix(config.UAAEndpoint, "/") + "/oauth/token"
	}

	return clientConfig
}

func hasAuthInfo(config *Config) bool {
	return config.Token != "" || config.RefreshToken != "" || (config.ClientID != "" && config.ClientSecret != "")
}

func createTokenManager(config *Config) auth.TokenManager {
	if config.RefreshToken == "" && (config.ClientID == "" || config.ClientSecret == "") {
		return nil
	}

	oauth2Config := &auth.OAuth2Config{
		TokenURL:     strings.TrimSuffix(config.UAAEndpoint, "/") + "/oauth/token",
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Username:     config.Username,
		RefreshToken: config.RefreshToken,
		AccessToken:  config.Token,
	}

	if oauth2Config.ClientID == "" {
		oauth2Config.ClientID = constants.DefaultCFClientID
	}

	manager := auth.NewConfigTokenManager(oauth2Config, NewConfigPersister(), cfapi.NewZerologLogger(newLogger(os.Stderr)))

	if config.Token != "" && config.TokenExpiresAt != nil {
		manager.SetToken(config.Token, *config.TokenExpiresAt)
	}

	return manager
}

// CreateClient builds a client from the CLI configuration. Renewed tokens are
// written back to the config file.
func CreateClient(ctx context.Context) (cfclient.Client, error) {
	return createClient(ctx, nil)
}

// createClient builds a client, letting configure adjust the client
// configuration first.
func createClient(ctx context.Context, configure func(*cfapi.Config)) (cfclient.Client, error) {
	config := loadConfig()

	if config.API == "" {
		return nil, constants.ErrNoAPIEndpointConfigured
	}

	if !hasAuthInfo(config) {
		return nil, constants.ErrNotAuthenticated
	}

	clientConfig := buildClientConfig(config)
	if configure != nil {
		configure(clientConfig)
	}

	tokenManager := createTokenManager(config)
	if tokenManager != nil && config.UAAEndpoint != "" {
		client, err := cfclient.NewWithTokenManager(ctx, clientConfig, tokenManager)
		if err != nil {
			return nil, fmt.Errorf("failed to create client with token manager: %w", err)
		}

		return client, nil
	}

	client, err := cfclient.New(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create CF client: %w", err)
	}

	return client, nil
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "View and modify the cfv2 configuration stored in ~/.cfv2/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			// Secrets never leave the config file.
			display := *config
			display.Token = maskSecret(display.Token)
			display.RefreshToken = maskSecret(display.RefreshToken)
			display.ClientSecret = maskSecret(display.ClientSecret)

			return writeOutput(cmd.OutOrStdout(), display, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("API", valueOrNA(display.API))
				_ = table.Append("UAA", valueOrNA(display.UAAEndpoint))
				_ = table.Append("Username", valueOrNA(display.Username))
				_ = table.Append("Client ID", valueOrNA(display.ClientID))
				_ = table.Append("Token", valueOrNA(display.Token))
				_ = table.Append("Token Expires", formatTime(display.TokenExpiresAt))
				_ = table.Append("Skip SSL Validation", fmt.Sprintf("%t", display.SkipSSLValidation))
				_ = table.Append("Output", valueOrNA(display.Output))
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Valid keys: " + strings.Join(settableKeys, ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Clear a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], "")
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", args[0])

			return nil
		},
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "api":
		config.API = value
	case "uaa_endpoint":
		config.UAAEndpoint = value
	case "client_id":
		config.ClientID = value
	case "client_secret":
		config.ClientSecret = value
	case "username":
		config.Username = value
	case "output":
		if value != "" && value != "table" && value != constants.FormatJSON && value != constants.FormatYAML {
			return fmt.Errorf("%w: %q", ErrInvalidOutputFormat, value)
		}

		config.Output = value
	case "skip_ssl_validation":
		config.SkipSSLValidation = value == "true"
	default:
		keys := append([]string(nil), settableKeys...)
		sort.Strings(keys)

		return fmt.Errorf("%w: %q (valid keys: %s)", ErrUnknownConfigKey, key, strings.Join(keys, ", "))
	}

	return nil
}

func maskSecret(value string) string {
	if value == "" {
		return ""
	}

	return Masked
}
