package config

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultEnvFile is loaded before flags are resolved when it exists.
	DefaultEnvFile = ".env"

	// DefaultListLimit is the page size used when a list request omits limit.
	DefaultListLimit = 100

	// MaxListLimit is the largest page a single list request may ask for.
	MaxListLimit = 500
)
