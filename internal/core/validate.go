package core

import (
	"fmt"
	"unicode/utf8"
)

// Content bounds shared by manual entry, proposal editing and proposal
// acceptance. The server-side check is authoritative; any client-side copy
// of these rules is advisory only.
const (
	MinContentLen = 2
	MaxContentLen = 200

	MinInputLen = 1000
	MaxInputLen = 10000

	MinCardCount     = 1
	MaxCardCount     = 20
	DefaultCardCount = 5
)

// ValidateContent returns an empty string when the flashcard field is within
// bounds, otherwise a user-facing message.
func ValidateContent(s string) string {
	switch n := utf8.RuneCountInString(s); {
	case n < MinContentLen:
		return fmt.Sprintf("must be at least %d characters", MinContentLen)
	case n > MaxContentLen:
		return fmt.Sprintf("must not exceed %d characters", MaxContentLen)
	default:
		return ""
	}
}

// ValidateProposalContent checks both sides of a card and returns field-keyed
// messages, or nil when both are valid.
func ValidateProposalContent(front, back string) map[string]string {
	errs := make(map[string]string)
	if msg := ValidateContent(front); msg != "" {
		errs["front_content"] = msg
	}
	if msg := ValidateContent(back); msg != "" {
		errs["back_content"] = msg
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateGenerationInput checks the source text and requested card count for
// a generation call. It returns nil when the input is acceptable.
func ValidateGenerationInput(inputText string, numberOfCards int) *ValidationError {
	fields := make(map[string]string)

	switch n := utf8.RuneCountInString(inputText); {
	case n < MinInputLen:
		fields["input_text"] = fmt.Sprintf("must be at least %d characters", MinInputLen)
	case n > MaxInputLen:
		fields["input_text"] = fmt.Sprintf("must not exceed %d characters", MaxInputLen)
	}

	if numberOfCards < MinCardCount || numberOfCards > MaxCardCount {
		fields["number_of_cards"] = fmt.Sprintf("must be between %d and %d", MinCardCount, MaxCardCount)
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
