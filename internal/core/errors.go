package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Provider-side failures. These are external dependency errors, never caused
// by user input, and map to 5xx responses at the API layer.
var (
	ErrGenerationFailed  = errors.New("generation failed")
	ErrMalformedResponse = errors.New("malformed provider response")
	ErrUnexpectedShape   = errors.New("unexpected provider response shape")
	ErrInvalidProposal   = errors.New("invalid proposal in provider response")
)

// ValidationError carries per-field messages for client-correctable input
// problems. It maps to a 400 response with structured details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
