package analyses

import "context"

// Repo defines persistence operations for analyses.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) (string, error)
	List(ctx context.Context) ([]Analysis, error)
	SetFeedback(ctx context.Context, analysisID string, fb Feedback) error
}
