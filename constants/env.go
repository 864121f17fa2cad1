package constants

const (
	// EnvPrefix is the prefix for environment variables mapped to flags.
	EnvPrefix = "APSETUP"

	EnvDebianFrontend = "DEBIAN_FRONTEND=noninteractive"
)
