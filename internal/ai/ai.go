/*
Package ai summarises bulletin PDFs with the Gemini API for inclusion in
notification emails.
*/
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"google.golang.org/genai"
)

const maxSummaryPoints = 5

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("gemini summary disabled: no API key configured")

type BulletinSummary struct {
	Summary []string `json:"summary"`
}

// Summarizer sends a bulletin PDF to Gemini and returns a short bullet summary.
type Summarizer struct {
	apiKey    string
	modelName string
}

func NewSummarizer(apiKey string, modelName string) *Summarizer {
	return &Summarizer{apiKey: apiKey, modelName: modelName}
}

func (s *Summarizer) Enabled() bool {
	return s.apiKey != ""
}

// Summarize returns up to five summary points for the PDF.
func (s *Summarizer) Summarize(ctx context.Context, title string, pdf []byte) ([]string, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	userContent := &genai.Content{
		Parts: []*genai.Part{
			genai.NewPartFromBytes(pdf, "application/pdf"),
			genai.NewPartFromText(fmt.Sprintf("Bülten başlığı: %s", title)),
		},
		Role: "user",
	}

	resp, err := client.Models.GenerateContent(ctx, s.modelName, []*genai.Content{userContent}, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   getResponseSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	return parseSummary(resp.Text())
}

func parseSummary(respText string) ([]string, error) {
	var summary BulletinSummary
	if err := json.Unmarshal([]byte(respText), &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gemini JSON response: %w. Raw text: %s", err, respText)
	}

	var points []string
	for _, p := range summary.Summary {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		points = append(points, p)
		if len(points) == maxSummaryPoints {
			break
		}
	}
	return points, nil
}

func getResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "3-5 concise Turkish bullet points summarising the bulletin.",
			},
		},
		Required: []string{"summary"},
	}
}
