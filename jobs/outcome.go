package jobs

// Status classifies the result of processing one article.
type Status int

const (
	// StatusSucceeded means the article was updated (or, in dry-run
	// mode, would have been).
	StatusSucceeded Status = iota + 1
	// StatusSkipped means the article needed no change or could not be
	// resolved this run; the row was left untouched.
	StatusSkipped
	// StatusFailed means processing or the write failed; the row was
	// left untouched and the next run will retry it.
	StatusFailed
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of one per-article worker invocation.
// Workers return outcomes instead of unwinding errors across the loop
// boundary, which keeps per-item failures isolated.
type Outcome struct {
	Status Status
	Reason string
}

// Succeeded returns a succeeded outcome.
func Succeeded() Outcome {
	return Outcome{Status: StatusSucceeded}
}

// Skipped returns a skipped outcome with the given reason.
func Skipped(reason string) Outcome {
	return Outcome{Status: StatusSkipped, Reason: reason}
}

// Failed returns a failed outcome with the given reason.
func Failed(reason string) Outcome {
	return Outcome{Status: StatusFailed, Reason: reason}
}
