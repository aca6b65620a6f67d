package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"pathoai-backend/internal/llm"
)

const apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Client implements llm.Client using the Gemini generateContent API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new Gemini client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_TOKEN is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("GEMINI_MODEL is required")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("GEMINI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: apiBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type generatePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// AnalyzeSlide sends the slide image and prompt to Gemini and parses the
// structured assessment out of the reply.
func (c *Client) AnalyzeSlide(ctx context.Context, input llm.Input) (llm.Result, error) {
	prompt := llm.BuildPrompt(input.Organ, input.ClinicalContext)
	reqBody := generateRequest{
		Contents: []generateContent{
			{Parts: []generatePart{
				{Text: prompt},
				{InlineData: &inlineData{MimeType: "image/jpeg", Data: input.ImageBase64}},
			}},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return llm.Result{}, err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return llm.Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return llm.Result{}, fmt.Errorf("gemini request timeout: %w", err)
		}
		return llm.Result{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.Result{}, err
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return llm.Result{}, fmt.Errorf("gemini response parse: %w", err)
	}
	if parsed.Error != nil {
		return llm.Result{}, fmt.Errorf("gemini error: %s (%s)", parsed.Error.Message, parsed.Error.Status)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return llm.Result{}, fmt.Errorf("gemini response missing candidates")
	}

	content := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if content == "" {
		return llm.Result{}, fmt.Errorf("gemini response empty content")
	}
	return llm.ParseResult(content)
}
