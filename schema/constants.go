package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// GitBackend represents the implementation used to read repository history.
	GitBackend string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
)

// All git backends supported.
const (
	ExecBackend  GitBackend = "exec" // default
	GoGitBackend GitBackend = "gogit"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	YAMLOut:    {},
	ParquetOut: {},
}

// ValidGitBackends lists all valid git backends.
var ValidGitBackends = map[GitBackend]struct{}{
	ExecBackend:  {},
	GoGitBackend: {},
}
