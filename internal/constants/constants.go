package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for discovery requests.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry settings. Retries are opt-in; the zero value disables them.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Concurrency limits.
const (
	// DefaultConcurrencyLimit limits concurrent page fetches.
	DefaultConcurrencyLimit = 3
)

// Time intervals and delays.
const (
	// DefaultPollInterval is used for job polling.
	DefaultPollInterval = 2 * time.Second

	// DefaultJobPollTimeout is the default timeout for job polling.
	DefaultJobPollTimeout = 5 * time.Minute

	// TokenExpirationBuffer is the buffer time before token expiration.
	TokenExpirationBuffer = 30 * time.Second
)

// Pagination and display limits.
const (
	// DefaultPageSize is the default number of results per page.
	DefaultPageSize = 50

	// MaxPageSize is the largest page the v2 API serves.
	MaxPageSize = 100

	// MaxPages is used to prevent infinite loops in pagination.
	MaxPages = 1000
)

// v2 job states.
const (
	JobStateQueued   = "queued"
	JobStateRunning  = "running"
	JobStateFinished = "finished"
	JobStateFailed   = "failed"
)

// Collector defaults.
const (
	// DefaultCollectorInterval is the wait between collection rounds.
	DefaultCollectorInterval = time.Minute

	// DefaultCollectorBatchSize is the number of events requested per round.
	DefaultCollectorBatchSize = 100

	// DefaultCollectorMinAge holds back events that may not have settled yet.
	DefaultCollectorMinAge = 5 * time.Minute

	// DefaultCollectorSubjectPrefix prefixes NATS subjects for usage events.
	DefaultCollectorSubjectPrefix = "cf.usage"

	// DefaultCollectorBucket is the NATS KV bucket holding cursors.
	DefaultCollectorBucket = "cfv2_collector"

	// DefaultCollectorListenAddr is the metrics server address.
	DefaultCollectorListenAddr = ":9090"
)

// API compatibility.
const (
	// MinimumV2APIVersion is the oldest Cloud Controller v2 API this client is tested against.
	MinimumV2APIVersion = "2.100.0"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"
)

// UAA defaults.
const (
	// DefaultCFClientID is the client id the cf CLI registers with UAA.
	DefaultCFClientID = "cf"

	// TokenPartsCount is the expected number of parts in a JWT token.
	TokenPartsCount = 3
)
