package ir

// Version constants for generated output and fingerprints.
const (
	// IRVersion is the descriptor schema version mixed into fingerprints.
	IRVersion = "1"

	// ToolVersion is the buildergen version.
	ToolVersion = "0.1.0"
)
