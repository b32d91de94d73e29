package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const flashcardSystemInstruction = "You are an AI assistant specialized in creating educational flashcards. " +
	"Analyze the provided text and create concise, effective flashcards that help users learn the key concepts. " +
	"The front side must be a clear, specific question and the back side a concise but comprehensive answer. " +
	"Each flashcard must focus on a single concept. Use clear, simple language and avoid compound questions. " +
	"Respond with a JSON object containing a 'flashcards' array of objects with 'front_content' and 'back_content' properties."

// flashcardResponseSchema constrains the model output to the shape the parser
// expects: {"flashcards": [{"front_content": ..., "back_content": ...}]}.
var flashcardResponseSchema = &genai.Schema{
	Type:     genai.TypeObject,
	Required: []string{"flashcards"},
	Properties: map[string]*genai.Schema{
		"flashcards": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type:     genai.TypeObject,
				Required: []string{"front_content", "back_content"},
				Properties: map[string]*genai.Schema{
					"front_content": {Type: genai.TypeString},
					"back_content":  {Type: genai.TypeString},
				},
			},
		},
	},
}

type LLMService struct {
	client      *genai.Client
	modelName   string
	temperature float32
	maxTokens   int32
}

func NewLLMService(ctx context.Context, apiKey, modelName string, temperature float32, maxTokens int32) (*LLMService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &LLMService{
		client:      client,
		modelName:   modelName,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

func (s *LLMService) ModelName() string {
	return s.modelName
}

// CompleteFlashcards sends a single completion request and returns the raw
// message text, which the caller parses. No retries: a failed attempt is
// terminal for this invocation.
func (s *LLMService) CompleteFlashcards(ctx context.Context, inputText string, numberOfCards int) (string, error) {
	model := s.client.GenerativeModel(s.modelName)

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(flashcardSystemInstruction)},
	}

	temp := s.temperature
	maxTokens := s.maxTokens
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:      &temp,
		MaxOutputTokens:  &maxTokens,
		ResponseMIMEType: "application/json",
		ResponseSchema:   flashcardResponseSchema,
	}

	prompt := fmt.Sprintf("Please create %d flashcards from the following text:\n\n%s", numberOfCards, inputText)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation request failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response had no candidates")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			out.WriteString(string(txt))
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("gemini response contained no text parts")
	}

	return out.String(), nil
}
