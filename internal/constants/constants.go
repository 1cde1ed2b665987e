package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "canopy"

	// ConfigFileName is the default config file name
	ConfigFileName = ".canopy.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "CANOPY"
)

// Output format constants
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatTSV  = "tsv"
)

// Default clustering radii, matching the reference implementation's
// commented-out defaults.
const (
	DefaultRCanopy = 0.1
	DefaultRClose  = 0.4
	DefaultRMerge  = 0.03
	DefaultRStep   = 0.1
)

// DefaultWorkers is used when no worker count is configured. The source
// pins this at 16; the port exposes it as a default, not a hard limit.
const DefaultWorkers = 16

// Default filter thresholds.
const (
	DefaultMaxShare   = 0.9
	DefaultMinNonZero = 1
)
