package core

// CreationMethod records how a flashcard came to exist. It is set exactly once
// at creation time.
type CreationMethod string

const (
	CreationManual   CreationMethod = "manual"
	CreationAIFull   CreationMethod = "ai_full"
	CreationAIEdited CreationMethod = "ai_edited"
)

func (m CreationMethod) Valid() bool {
	switch m {
	case CreationManual, CreationAIFull, CreationAIEdited:
		return true
	}
	return false
}

// Proposal is a transient front/back pair produced by a generation call,
// pending user accept or reject. It is never persisted on its own.
type Proposal struct {
	FrontContent string `json:"front_content"`
	BackContent  string `json:"back_content"`
}

// GenerationResult is returned to the caller of a successful generation.
type GenerationResult struct {
	GenerationID     string     `json:"generation_id"`
	Proposals        []Proposal `json:"proposals"`
	AIModel          string     `json:"ai_model"`
	GenerationTimeMs int64      `json:"generation_time_ms"`
	TotalGenerated   int        `json:"total_generated"`
}

// CreateFlashcardCommand covers both manual creation and acceptance of an AI
// proposal. GenerationID is required exactly when the method is not manual.
type CreateFlashcardCommand struct {
	FrontContent   string
	BackContent    string
	CreationMethod CreationMethod
	GenerationID   string
}

type UpdateFlashcardCommand struct {
	FrontContent string
	BackContent  string
}

// Stats summarises a user's collection by creation method.
type Stats struct {
	ManualCount    int64 `json:"manual_count"`
	AIFullCount    int64 `json:"ai_full_count"`
	AIEditedCount  int64 `json:"ai_edited_count"`
	TotalGenerated int64 `json:"total_generated"`
}
