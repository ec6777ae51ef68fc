package organize

// MoveFailure records one file whose move failed.
type MoveFailure struct {
	Name string
	Err  error
}

// Summary is the outcome of one organize run. Warnings (unmatched and
// ambiguous files) do not make a run unsuccessful.
type Summary struct {
	Moved       int
	DirsCreated int
	Unmatched   []string
	Ambiguous   []string
	Failed      []MoveFailure
}

// HasWarnings reports whether anything was left behind or failed.
func (s *Summary) HasWarnings() bool {
	return len(s.Unmatched) > 0 || len(s.Ambiguous) > 0 || len(s.Failed) > 0
}
