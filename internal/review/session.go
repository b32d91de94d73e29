// Package review tracks a batch of generated flashcard proposals through the
// edit / accept / reject cycle. One session exists per user at a time; a new
// generation replaces the previous batch.
package review

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/10xdevs/flashgen/internal/core"
	"github.com/10xdevs/flashgen/internal/store"
)

var (
	ErrNoSession        = errors.New("no active review session")
	ErrProposalNotFound = errors.New("proposal not found in review session")
)

// CardCreator persists an accepted proposal as a flashcard. Implemented by
// core.FlashcardService; the gateway behind it enforces the acceptance
// ceiling, not this package.
type CardCreator interface {
	Create(ctx context.Context, userID string, cmd core.CreateFlashcardCommand) (*store.Flashcard, error)
}

// Proposal is the review-time view of a generated card. Errors holds
// field-keyed validation messages from the latest edit or accept attempt.
type Proposal struct {
	ID           string            `json:"id"`
	FrontContent string            `json:"front_content"`
	BackContent  string            `json:"back_content"`
	IsEdited     bool              `json:"is_edited"`
	IsSaving     bool              `json:"is_saving"`
	Errors       map[string]string `json:"errors,omitempty"`
}

// Session is a point-in-time snapshot of a user's review batch.
type Session struct {
	GenerationID string     `json:"generation_id"`
	Proposals    []Proposal `json:"proposals"`
}

type session struct {
	generationID string
	proposals    []*Proposal
}

// Manager holds the active review session of each user. All batch state is
// in-memory and lost on restart; only accepted flashcards are durable.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
	creator  CardCreator
}

func NewManager(creator CardCreator) *Manager {
	return &Manager{
		sessions: make(map[string]*session),
		creator:  creator,
	}
}

// Initialize seeds a fresh batch from a generation result, replacing any
// session the user already had. All proposals start unedited and unsaved.
func (m *Manager) Initialize(userID, generationID string, proposals []core.Proposal) {
	batch := make([]*Proposal, 0, len(proposals))
	for i, p := range proposals {
		batch = append(batch, &Proposal{
			ID:           fmt.Sprintf("proposal-%d", i),
			FrontContent: p.FrontContent,
			BackContent:  p.BackContent,
		})
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = &session{
		generationID: generationID,
		proposals:    batch,
	}
}

// Snapshot returns a copy of the user's current batch.
func (m *Manager) Snapshot(userID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}
	out := &Session{
		GenerationID: sess.generationID,
		Proposals:    make([]Proposal, 0, len(sess.proposals)),
	}
	for _, p := range sess.proposals {
		out.Proposals = append(out.Proposals, *p)
	}
	return out, nil
}

// Update merges field edits into a proposal, marks it edited and re-validates
// both sides. Validation failures are attached to the proposal, never
// persisted anywhere.
func (m *Manager) Update(userID, proposalID string, frontContent, backContent *string) (*Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}
	p := sess.find(proposalID)
	if p == nil {
		return nil, ErrProposalNotFound
	}

	if frontContent != nil {
		p.FrontContent = *frontContent
	}
	if backContent != nil {
		p.BackContent = *backContent
	}
	p.IsEdited = true
	p.Errors = core.ValidateProposalContent(p.FrontContent, p.BackContent)

	snapshot := *p
	return &snapshot, nil
}

// Accept validates the proposal and, if valid, persists it as a flashcard
// tagged ai_edited when the user touched it and ai_full otherwise. On success
// the proposal leaves the batch. When the generation's acceptance ceiling is
// hit the proposal stays in the batch with IsSaving cleared, so the user can
// still reject it or see the state.
func (m *Manager) Accept(ctx context.Context, userID, proposalID string) (*store.Flashcard, error) {
	m.mu.Lock()
	sess, ok := m.sessions[userID]
	if !ok || sess.generationID == "" {
		m.mu.Unlock()
		return nil, ErrNoSession
	}
	p := sess.find(proposalID)
	if p == nil {
		m.mu.Unlock()
		return nil, ErrProposalNotFound
	}

	if errs := core.ValidateProposalContent(p.FrontContent, p.BackContent); errs != nil {
		p.Errors = errs
		m.mu.Unlock()
		return nil, &core.ValidationError{Fields: errs}
	}

	p.IsSaving = true
	cmd := core.CreateFlashcardCommand{
		FrontContent:   p.FrontContent,
		BackContent:    p.BackContent,
		CreationMethod: core.CreationAIFull,
		GenerationID:   sess.generationID,
	}
	if p.IsEdited {
		cmd.CreationMethod = core.CreationAIEdited
	}
	m.mu.Unlock()

	// The persistence call runs outside the lock; the gateway's conditional
	// counter update is what makes concurrent accepts safe.
	card, err := m.creator.Create(ctx, userID, cmd)

	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok = m.sessions[userID]
	if !ok {
		// Session was reset while saving; the flashcard, if created, stands.
		return card, err
	}
	p = sess.find(proposalID)

	if err != nil {
		if p != nil {
			p.IsSaving = false
		}
		return nil, err
	}
	if p != nil {
		sess.remove(proposalID)
	}
	return card, nil
}

// Reject drops a proposal from the batch. Rejecting an already-absent
// proposal is a no-op, so the call is idempotent.
func (m *Manager) Reject(userID, proposalID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[userID]
	if !ok {
		return
	}
	sess.remove(proposalID)
}

// Reset discards the user's batch entirely.
func (m *Manager) Reset(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

func (s *session) find(proposalID string) *Proposal {
	for _, p := range s.proposals {
		if p.ID == proposalID {
			return p
		}
	}
	return nil
}

func (s *session) remove(proposalID string) {
	for i, p := range s.proposals {
		if p.ID == proposalID {
			s.proposals = append(s.proposals[:i], s.proposals[i+1:]...)
			return
		}
	}
}
