package journey

import (
	"errors"
	"fmt"
)

// ErrSessionFailed is returned by Run and Chat after the provider has
// rejected the credential. No retry can succeed without an external
// configuration fix, so the session refuses further generation.
var ErrSessionFailed = errors.New("session failed: credential rejected, fix provider configuration and restart")

// TemplateError indicates a stage prompt was requested before its
// required upstream context was confirmed. This is a programming-contract
// violation in stage sequencing, not a user-facing error: the state
// machine makes these transitions unreachable, so hitting one is a defect.
type TemplateError struct {
	Stage   StageKind
	Missing string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("stage %s prompt requires %s, which is not set", e.Stage, e.Missing)
}

// ParseErrorKind classifies content-shape failures.
type ParseErrorKind int

const (
	// ParseEmpty means the response parsed but contained zero items.
	ParseEmpty ParseErrorKind = iota
	// ParseUnexpectedShape means the minimum required structure was not found.
	ParseUnexpectedShape
)

func (k ParseErrorKind) String() string {
	if k == ParseEmpty {
		return "empty"
	}
	return "unexpected shape"
}

// ParseError indicates the model's text could not be structured into the
// stage's expected shape. The raw text is preserved so callers can retry
// or surface it for manual inspection. Malformed text is never coerced
// into an empty-but-successful result.
type ParseError struct {
	Stage StageKind
	Kind  ParseErrorKind
	Raw   string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s response (%s): %v", e.Stage, e.Kind, e.Err)
	}
	return fmt.Sprintf("parse %s response: %s", e.Stage, e.Kind)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StageFailure is the terminal outcome of a stage whose responses stayed
// malformed past the parse retry cap. Raw holds the last response text.
type StageFailure struct {
	Stage    StageKind
	Attempts int
	Raw      string
	Err      error
}

func (e *StageFailure) Error() string {
	return fmt.Sprintf("stage %s failed after %d attempts: %v", e.Stage, e.Attempts, e.Err)
}

func (e *StageFailure) Unwrap() error { return e.Err }
