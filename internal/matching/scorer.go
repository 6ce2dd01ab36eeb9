// Package matching scores a resume against a job description via Gemini.
package matching

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/jobnest-app/jobnest-backend/config"
)

// Scorer produces a match score for a resume file and a job description.
// The returned string is what the client displays.
type Scorer interface {
	Score(ctx context.Context, resume []byte, mimeType, jobDescription string) (string, error)
}

const scorePrompt = `You are an AI assistant that evaluates how well a resume matches a job description.
Return a score out of 100.

Job Description:
%s
Resume (file content is attached):

Make sure to analyze the resume content thoroughly and provide an accurate score based on the job description.
To make the score consistent with the job description and the resume content extract the keywords from the job description and match them with the resume content.
Only return the score as a number without any additional text. Do not include any explanations or comments.
`

// GeminiScorer calls Gemini with the resume attached inline.
type GeminiScorer struct {
	llm llms.Model
}

func NewGeminiScorer(ctx context.Context, cfg *config.GeminiConfig) (*GeminiScorer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiScorer{llm: llm}, nil
}

func (s *GeminiScorer) Score(ctx context.Context, resume []byte, mimeType, jobDescription string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(fmt.Sprintf(scorePrompt, jobDescription)),
				llms.BinaryPart(mimeType, resume),
			},
		},
	}

	resp, err := s.llm.GenerateContent(ctx, content)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}

	return CleanScore(resp.Choices[0].Content), nil
}

// CleanScore normalizes the model's reply. The model is asked for a bare
// number but is not guaranteed to comply: when the reply starts with an
// integer it is extracted and clamped to 0-100, otherwise the raw text is
// passed through untouched for the client to display.
func CleanScore(raw string) string {
	text := strings.TrimSpace(raw)

	i := 0
	for i < len(text) && unicode.IsDigit(rune(text[i])) {
		i++
	}
	if i == 0 {
		return text
	}

	n, err := strconv.Atoi(text[:i])
	if err != nil {
		return text
	}
	if n > 100 {
		n = 100
	}
	return strconv.Itoa(n)
}
