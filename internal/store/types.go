package store

// Run is one generate invocation.
type Run struct {
	Seq          int64 // assigned by RecordRun
	ID           string
	ToolVersion  string
	IRVersion    string
	ConfigHash   string
	FileCount    int
	WrittenCount int
	SkippedCount int
	FailedCount  int
}

// Artifact is the ledger entry for one output file.
type Artifact struct {
	OutputPath  string
	SourcePath  string
	Fingerprint string
	ContentHash string
	Records     []string
	RunID       string
}
