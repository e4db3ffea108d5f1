package gemini

import "fmt"

// BackendError reports a network, auth or quota failure while talking to
// the completion backend.
type BackendError struct {
	Op         string // "converse", "stream", "extract", "assess"
	StatusCode int    // zero when the request never reached the backend
	Err        error
}

func (e *BackendError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gemini %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("gemini %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// ExtractionError reports that the backend returned output which could not
// be parsed into an ExtractedProfile. Raw carries the offending payload for
// diagnostics; callers must treat the extraction as having produced no data.
type ExtractionError struct {
	Raw string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("cv extraction: unparseable structured output: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// AssessmentError reports that the backend returned an eligibility analysis
// which could not be parsed or failed validation. No default result is ever
// fabricated in its place.
type AssessmentError struct {
	Raw string
	Err error
}

func (e *AssessmentError) Error() string {
	return fmt.Sprintf("profile assessment: invalid structured output: %v", e.Err)
}

func (e *AssessmentError) Unwrap() error { return e.Err }
