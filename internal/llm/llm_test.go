package llm

import (
	"strings"
	"testing"
)

func TestParseResult(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "plain json",
			raw:  `{"observation":"cells look normal","preliminaryDiagnosis":"benign","confidenceLevel":"High","disclaimer":"not medical advice"}`,
			want: "benign",
		},
		{
			name: "fenced json",
			raw:  "```json\n{\"observation\":\"x\",\"preliminaryDiagnosis\":\"malignant\",\"confidenceLevel\":\"Low\",\"disclaimer\":\"d\"}\n```",
			want: "malignant",
		},
		{
			name: "fenced without language tag",
			raw:  "```\n{\"preliminaryDiagnosis\":\"uncertain\"}\n```",
			want: "uncertain",
		},
		{
			name:    "not json",
			raw:     "I'm sorry, I can't assess this slide.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResult(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got.PreliminaryDiagnosis != tt.want {
				t.Fatalf("expected diagnosis %q, got %q", tt.want, got.PreliminaryDiagnosis)
			}
		})
	}
}

func TestBuildPromptIncludesContext(t *testing.T) {
	prompt := BuildPrompt("Liver", "45yo male, elevated ALT")
	if !strings.Contains(prompt, "Organ: Liver") {
		t.Fatalf("prompt missing organ: %s", prompt)
	}
	if !strings.Contains(prompt, "Clinical Context: 45yo male, elevated ALT") {
		t.Fatalf("prompt missing clinical context: %s", prompt)
	}
	if !strings.Contains(prompt, "ONLY valid JSON") {
		t.Fatalf("prompt missing JSON instruction")
	}
}
