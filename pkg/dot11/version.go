package dot11

// Version information for the dot11 module.
const (
	// Version is the current version of the dot11 module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)
