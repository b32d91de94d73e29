package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type rawCard struct {
	FrontContent *string `json:"front_content"`
	BackContent  *string `json:"back_content"`
}

// ParseProposals validates the raw text returned by the completion provider
// and turns it into an ordered list of proposals.
//
// The parse is all-or-nothing: a single malformed element fails the whole
// response, because it means the model deviated from the requested contract
// and the rest of the output cannot be trusted either. The result is
// truncated to numberOfCards when the provider over-delivers; fewer proposals
// than requested is a valid outcome and is forwarded as-is.
func ParseProposals(raw string, numberOfCards int) ([]Proposal, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty response body", ErrMalformedResponse)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	list, ok := top["flashcards"]
	if !ok {
		return nil, fmt.Errorf("%w: missing flashcards field", ErrUnexpectedShape)
	}
	if string(bytes.TrimSpace(list)) == "null" {
		return nil, fmt.Errorf("%w: flashcards is null", ErrUnexpectedShape)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(list, &elements); err != nil {
		return nil, fmt.Errorf("%w: flashcards is not an array", ErrUnexpectedShape)
	}

	proposals := make([]Proposal, 0, len(elements))
	for i, element := range elements {
		var card rawCard
		if err := json.Unmarshal(element, &card); err != nil {
			return nil, fmt.Errorf("%w: element %d is not an object with string fields", ErrInvalidProposal, i)
		}
		if card.FrontContent == nil || *card.FrontContent == "" {
			return nil, fmt.Errorf("%w: element %d is missing front_content", ErrInvalidProposal, i)
		}
		if card.BackContent == nil || *card.BackContent == "" {
			return nil, fmt.Errorf("%w: element %d is missing back_content", ErrInvalidProposal, i)
		}
		proposals = append(proposals, Proposal{
			FrontContent: *card.FrontContent,
			BackContent:  *card.BackContent,
		})
	}

	if numberOfCards > 0 && len(proposals) > numberOfCards {
		proposals = proposals[:numberOfCards]
	}
	return proposals, nil
}
