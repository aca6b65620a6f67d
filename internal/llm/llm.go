package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Input carries the slide and clinical context for an analysis call.
type Input struct {
	ImageBase64     string
	Organ           string
	ClinicalContext string
}

// Result is the structured assessment returned by a model.
type Result struct {
	Observation          string `json:"observation"`
	PreliminaryDiagnosis string `json:"preliminaryDiagnosis"`
	ConfidenceLevel      string `json:"confidenceLevel"`
	Disclaimer           string `json:"disclaimer"`
}

// Client analyzes a pathology slide image.
type Client interface {
	AnalyzeSlide(ctx context.Context, input Input) (Result, error)
}

// PlaceholderClient is used when no provider token is configured.
type PlaceholderClient struct{}

func (PlaceholderClient) AnalyzeSlide(ctx context.Context, input Input) (Result, error) {
	_ = ctx
	_ = input
	return Result{}, errors.New("llm client not configured")
}

// BuildPrompt renders the analysis prompt shared by all providers.
func BuildPrompt(organ, clinicalContext string) string {
	return fmt.Sprintf(`Analyze this pathology slide image and provide a medical assessment.

Organ: %s
Clinical Context: %s

Please provide your analysis in the following JSON format:
{
    "observation": "Your detailed observations about the slide",
    "preliminaryDiagnosis": "Your preliminary diagnosis based on the slide",
    "confidenceLevel": "Low/Medium/High",
    "disclaimer": "Medical disclaimer about the analysis"
}

Important: Return ONLY valid JSON, no additional text.`, organ, clinicalContext)
}

// ParseResult decodes a model response, tolerating markdown code fences
// around the JSON body.
func ParseResult(raw string) (Result, error) {
	clean := strings.TrimSpace(raw)
	if strings.HasPrefix(clean, "```") {
		clean = strings.ReplaceAll(clean, "```json", "")
		clean = strings.ReplaceAll(clean, "```", "")
		clean = strings.TrimSpace(clean)
	}
	var result Result
	if err := json.Unmarshal([]byte(clean), &result); err != nil {
		return Result{}, fmt.Errorf("parse analysis result: %w", err)
	}
	return result, nil
}
