package constants

import "time"

// API defaults.
const (
	// DefaultBaseURL is the production ZEFIX public REST root.
	DefaultBaseURL = "https://www.zefix.admin.ch/ZefixPublicREST"

	// DefaultUserAgent is sent when no User-Agent is configured.
	DefaultUserAgent = "zefix-go-client/1.0"

	// APIPathPrefix is the versioned path prefix of every route.
	APIPathPrefix = "/api/v1"
)

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

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry and concurrency limits.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second

	// DefaultConcurrencyLimit limits concurrent lookups.
	DefaultConcurrencyLimit = 4

	// MaxErrorBodySize caps how much of an error body is kept.
	MaxErrorBodySize = 64 * 1024
)

// Validation and limits.
const (
	// MinimumArgumentCount is the minimum number of command line arguments.
	MinimumArgumentCount = 2
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2

	// SOGCDateLayout is the date layout of SOGC routes.
	SOGCDateLayout = "2006-01-02"
)
