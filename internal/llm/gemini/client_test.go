package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pathoai-backend/internal/llm"
)

func TestAnalyzeSlideParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.5-pro:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "test-token" {
			t.Errorf("unexpected key %q", got)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 2 {
			t.Errorf("expected one content with text and image parts, got %+v", req.Contents)
		} else if data := req.Contents[0].Parts[1].InlineData; data == nil || data.MimeType != "image/jpeg" {
			t.Errorf("expected inline jpeg data, got %+v", data)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{
					"parts": []map[string]any{
						{"text": `{"observation":"o","preliminaryDiagnosis":"malignant","confidenceLevel":"Medium","disclaimer":"d"}`},
					},
				}},
			},
		})
	}))
	defer srv.Close()

	client, err := NewClient("test-token", "gemini-2.5-pro")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.baseURL = srv.URL

	result, err := client.AnalyzeSlide(context.Background(), llm.Input{
		ImageBase64:     "aGVsbG8=",
		Organ:           "Lung",
		ClinicalContext: "persistent cough",
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.PreliminaryDiagnosis != "malignant" || result.ConfidenceLevel != "Medium" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestAnalyzeSlideAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"},
		})
	}))
	defer srv.Close()

	client, err := NewClient("bad-token", "gemini-2.5-pro")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.baseURL = srv.URL

	if _, err := client.AnalyzeSlide(context.Background(), llm.Input{ImageBase64: "aGVsbG8="}); err == nil {
		t.Fatalf("expected error from API error response")
	}
}
