package generate

import (
	"errors"
	"fmt"
)

// Status is the outcome for one source file.
type Status string

const (
	StatusWritten   Status = "written"
	StatusUnchanged Status = "unchanged"
	StatusDryRun    Status = "dry-run"
	StatusFailed    Status = "failed"
)

// FileReport is the outcome for one source file.
type FileReport struct {
	Source  string
	Output  string
	Records []string
	Status  Status
	Err     error
}

// Report summarises a run.
type Report struct {
	RunID string
	Files []FileReport
}

// Count returns the number of files with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == s {
			n++
		}
	}
	return n
}

// Failed returns the reports of failed files.
func (r *Report) Failed() []FileReport {
	var out []FileReport
	for _, f := range r.Files {
		if f.Status == StatusFailed {
			out = append(out, f)
		}
	}
	return out
}

// ErrOutputIsSource is the WriteError cause when the output suffix maps a
// source file onto itself.
var ErrOutputIsSource = errors.New("output path is the source file")

// WriteError reports an output file that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// LedgerError wraps a failure to read or record the generation ledger.
type LedgerError struct {
	Err error
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger: %v", e.Err)
}

func (e *LedgerError) Unwrap() error { return e.Err }
