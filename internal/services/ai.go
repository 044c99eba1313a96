package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

// SuggestedDisease is a draft entry produced from free text. It is never
// persisted directly; the client reviews it and posts a regular create.
type SuggestedDisease struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Cause       string   `json:"cause"`
	Symptoms    string   `json:"symptoms"`
	Prevention  string   `json:"prevention"`
	Tags        []string `json:"tags"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// SuggestDisease drafts a catalog entry from free-form notes using OpenAI GPT
func (s *AIService) SuggestDisease(ctx context.Context, text string) (*SuggestedDisease, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are a medical reference assistant. Turn the following notes into a draft catalog entry.

Notes:
%s

Return ONLY a JSON object in this exact shape:
{
  "name": "disease name (short)",
  "description": "free-text description",
  "cause": "known cause, or empty string",
  "symptoms": "comma-separated symptoms, at most 255 characters",
  "prevention": "prevention advice, or empty string",
  "tags": ["short classification tags, e.g. Viral, Chronic"]
}

Rules:
- Use empty strings for anything the notes do not cover
- Do not invent facts that are not in the notes
- Return JSON only, no surrounding text`, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var suggestion SuggestedDisease
	if err := json.Unmarshal([]byte(content), &suggestion); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return &suggestion, nil
}
