package harness

// RecordSummary is how one record was classified.
type RecordSummary struct {
	Name     string   `json:"name"`
	Builder  string   `json:"builder"`
	Fields   []string `json:"fields"`
	Optional []string `json:"optional"`
}

// Result is the outcome of running a scenario.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	Records []RecordSummary `json:"records"`

	// Output is the rendered companion file, empty when generation failed.
	Output []byte `json:"-"`

	// Err is the generation error, if any.
	Err error `json:"-"`

	// Errors lists failed assertions.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{Pass: true, Records: []RecordSummary{}, Errors: []string{}}
}

// AddError records a failed assertion and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
