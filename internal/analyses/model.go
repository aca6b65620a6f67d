package analyses

import "time"

// Analysis represents one analyzed pathology slide.
type Analysis struct {
	ID                   string    `json:"id"`
	SlideImage           string    `json:"slideImage"`
	Organ                string    `json:"organ"`
	ClinicalContext      string    `json:"clinicalContext"`
	Model                string    `json:"model"`
	Observation          string    `json:"observation,omitempty"`
	PreliminaryDiagnosis string    `json:"preliminaryDiagnosis,omitempty"`
	ConfidenceLevel      string    `json:"confidenceLevel,omitempty"`
	Disclaimer           string    `json:"disclaimer,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	Feedback             *Feedback `json:"feedback"`
}

// Feedback is a reviewer's verdict attached to an analysis.
type Feedback struct {
	Rating int    `json:"rating"`
	Notes  string `json:"notes"`
}
