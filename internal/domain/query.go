package domain

import "fmt"

// Mode selects the shape of the generated shell output.
type Mode int

const (
	// ModeSingleLine demands exactly one line of shell with no explanation.
	ModeSingleLine Mode = iota
	// ModeMultiline permits a full script body.
	ModeMultiline
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == ModeMultiline {
		return "multiline"
	}
	return "single-line"
}

// ReasoningLevel is a request-level hint nudging the model toward more
// deliberate generation. It is passed through to the provider and never
// alters local control flow.
type ReasoningLevel string

const (
	ReasoningLow    ReasoningLevel = "low"
	ReasoningMedium ReasoningLevel = "medium"
	ReasoningHigh   ReasoningLevel = "high"
)

// ParseReasoningLevel validates a user-supplied effort value. Empty input
// falls back to low.
func ParseReasoningLevel(value string) (ReasoningLevel, error) {
	switch ReasoningLevel(value) {
	case "":
		return ReasoningLow, nil
	case ReasoningLow, ReasoningMedium, ReasoningHigh:
		return ReasoningLevel(value), nil
	default:
		return "", fmt.Errorf("invalid reasoning level %q (want low, medium or high)", value)
	}
}

// ParsedResponse splits a raw completion into its command (or free-form
// answer) and the optional trailing reasoning annotation.
type ParsedResponse struct {
	Command      string
	Reasoning    string
	HasReasoning bool
	// ModeMismatch flags a multi-line command produced in single-line mode.
	// The output is kept verbatim; callers may warn but never truncate.
	ModeMismatch bool
}
