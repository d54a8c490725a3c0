package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "editguard"

	// ConfigFileName is the default config file name
	ConfigFileName = "editguard.config.json"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "EDITGUARD"
)

// Check name constants
const (
	CheckSecurity      = "security"
	CheckQuality       = "quality"
	CheckAccessibility = "accessibility"
	CheckAdvanced      = "advanced"
)

// Exit code constants for the hook and scan commands
const (
	ExitPass        = 0
	ExitBlocked     = 1
	ExitUnexpected  = 2
	ExitConfigError = 3
)

// Output format constants
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Analysis window constants shared by the line-oriented scanners
const (
	// TagWindowLines is how far a JSX tag may wrap past its opening line
	TagWindowLines = 3

	// ContextWindowLines is the look-ahead/behind span for guard detection
	ContextWindowLines = 10

	// EffectWindowLines is how far a cleanup may follow its subscription
	EffectWindowLines = 30
)
