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

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Cache defaults.
const (
	// DefaultCacheSize is the default maximum number of cached entries.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default cache entry lifetime.
	DefaultCacheTTL = 5 * time.Minute
)

// Pagination defaults.
const (
	// DefaultPageLimit is the page size used by list helpers when the
	// caller does not specify one.
	DefaultPageLimit = 100

	// MaxPageFetches bounds ListAll so a misbehaving server cannot loop
	// the client forever.
	MaxPageFetches = 1000
)
