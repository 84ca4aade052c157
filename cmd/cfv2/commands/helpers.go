package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	Masked    = "***"
	tableTime = "2006-01-02 15:04:05"
)

// Common static errors used throughout the commands package.
var (
	ErrInvalidOutputFormat   = errors.New("invalid output format, use table, json or yaml")
	ErrUnknownConfigKey      = errors.New("unknown configuration key")
	ErrAPIEndpointRequired   = errors.New("API endpoint is required")
	ErrConfirmationRequired  = errors.New("destructive operation requires --force")
	ErrUsernameRequired      = errors.New("username is required")
	ErrUnsupportedAPIVersion = errors.New("unsupported Cloud Controller API version")
)

// outputFormat returns the configured output format.
func outputFormat() string {
	return strings.ToLower(viper.GetString("output"))
}

// isTableOutput reports whether results are rendered as tables.
func isTableOutput() bool {
	format := outputFormat()

	return format != constants.FormatJSON && format != constants.FormatYAML
}

// writeOutput encodes value as JSON or YAML, or renders it with fillTable.
func writeOutput(w io.Writer, value interface{}, fillTable func(table *tablewriter.Table)) error {
	switch outputFormat() {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(value)
	default:
		table := tablewriter.NewWriter(w)
		fillTable(table)

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

func valueOrNA(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func stringPtrOrNA(value *string) string {
	if value == nil {
		return constants.NotAvailable
	}

	return valueOrNA(*value)
}

func boolPtrString(value *bool) string {
	if value == nil {
		return constants.NotAvailable
	}

	return fmt.Sprintf("%t", *value)
}

func formatTime(value *time.Time) string {
	if value == nil || value.IsZero() {
		return constants.NotAvailable
	}

	return value.Local().Format(tableTime)
}

// formatTimestamp reformats an RFC3339 timestamp for tables.
func formatTimestamp(value string) string {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return valueOrNA(value)
	}

	return formatTime(&parsed)
}

// formatMillis formats a UAA epoch-millisecond timestamp.
func formatMillis(value int64) string {
	if value == 0 {
		return constants.NotAvailable
	}

	parsed := time.UnixMilli(value)

	return formatTime(&parsed)
}

// newLogger returns the CLI logger. Terminals get human readable output,
// everything else gets JSON lines.
func newLogger(w io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}

	if file, ok := w.(*os.File); ok && isatty.IsTerminal(file.Fd()) {
		output := zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    viper.GetBool("no-color"),
		}

		return zerolog.New(output).Level(level).With().Timestamp().Logger()
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
