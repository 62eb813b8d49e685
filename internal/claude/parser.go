package claude

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for response validation failures.
var (
	// ErrMalformedResponse indicates stdout was not a JSON envelope.
	ErrMalformedResponse = errors.New("malformed Claude CLI response")

	// ErrToolError indicates the envelope reported is_error=true.
	ErrToolError = errors.New("Claude CLI reported an error")

	// ErrNoOutput indicates the envelope carried no usable structured payload.
	ErrNoOutput = errors.New("no valid output from Claude CLI")
)

// previewLimit bounds how much raw output is echoed back in errors.
const previewLimit = 200

// Envelope is the top-level JSON object printed by `claude --output-format json`.
type Envelope struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
	IsError bool   `json:"is_error"`
	Result  string `json:"result"`

	// StructuredOutput holds the payload matching the requested --json-schema.
	StructuredOutput json.RawMessage `json:"structured_output,omitempty"`
}

// FailureKind classifies why a response could not be used.
type FailureKind int

// Failure kinds.
const (
	KindMalformed FailureKind = iota + 1
	KindToolError
	KindNoOutput
)

// String returns the string representation of the FailureKind.
func (k FailureKind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindToolError:
		return "tool_error"
	case KindNoOutput:
		return "no_output"
	default:
		return "unknown"
	}
}

// ResponseError is the failure side of response validation.
type ResponseError struct {
	// Kind is the failure classification.
	Kind FailureKind
	// Detail is a bounded description: a raw output preview for malformed
	// responses, the envelope's result text for tool errors.
	Detail string
}

// Error returns a formatted error message.
func (e *ResponseError) Error() string {
	switch e.Kind {
	case KindMalformed:
		return fmt.Sprintf("failed to parse Claude CLI response, raw output: \"%s\"", e.Detail)
	case KindToolError:
		return "Claude CLI error: " + e.Detail
	default:
		if e.Detail != "" {
			return "no valid commit message received from Claude CLI: " + e.Detail
		}
		return "no valid commit message received from Claude CLI"
	}
}

// Unwrap returns the sentinel matching the failure kind.
func (e *ResponseError) Unwrap() error {
	switch e.Kind {
	case KindMalformed:
		return ErrMalformedResponse
	case KindToolError:
		return ErrToolError
	default:
		return ErrNoOutput
	}
}

// ParseEnvelope decodes stdout and checks the envelope state.
// A returned envelope always has a non-empty StructuredOutput.
func ParseEnvelope(stdout string) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal([]byte(stdout), &env); err != nil {
		return nil, &ResponseError{Kind: KindMalformed, Detail: Preview(stdout, previewLimit)}
	}

	if env.IsError {
		return nil, &ResponseError{Kind: KindToolError, Detail: env.Result}
	}

	payload := strings.TrimSpace(string(env.StructuredOutput))
	if payload == "" || payload == "null" {
		return nil, &ResponseError{Kind: KindNoOutput, Detail: "structured_output is missing"}
	}

	return &env, nil
}

// DecodeSingle extracts a single suggestion from a validated envelope.
func DecodeSingle(env *Envelope) (Suggestion, error) {
	var s Suggestion
	if err := json.Unmarshal(env.StructuredOutput, &s); err != nil {
		return Suggestion{}, &ResponseError{Kind: KindNoOutput, Detail: "structured_output does not match schema"}
	}

	s.Message = strings.TrimSpace(s.Message)
	s.Explanation = strings.TrimSpace(s.Explanation)
	if s.Message == "" {
		return Suggestion{}, &ResponseError{Kind: KindNoOutput}
	}
	return s, nil
}

// DecodeMany extracts the suggestion list from a validated envelope.
// Entries whose message is blank are dropped.
func DecodeMany(env *Envelope) ([]Suggestion, error) {
	var payload struct {
		Commits []Suggestion `json:"commits"`
	}
	if err := json.Unmarshal(env.StructuredOutput, &payload); err != nil {
		return nil, &ResponseError{Kind: KindNoOutput, Detail: "structured_output does not match schema"}
	}

	suggestions := make([]Suggestion, 0, len(payload.Commits))
	for _, s := range payload.Commits {
		s.Message = strings.TrimSpace(s.Message)
		s.Explanation = strings.TrimSpace(s.Explanation)
		if s.Message == "" {
			continue
		}
		suggestions = append(suggestions, s)
	}

	if len(suggestions) == 0 {
		return nil, &ResponseError{Kind: KindNoOutput}
	}
	return suggestions, nil
}
