package analyses

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	data []Analysis
}

// NewMemoryRepo constructs an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis.ID = primitive.NewObjectID().Hex()
	r.data = append(r.data, analysis)
	return analysis.ID, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Analysis, len(r.data))
	copy(out, r.data)
	return out, nil
}

func (r *MemoryRepo) SetFeedback(ctx context.Context, analysisID string, fb Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := primitive.ObjectIDFromHex(analysisID); err != nil {
		return ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.data {
		if r.data[i].ID == analysisID {
			fbCopy := fb
			r.data[i].Feedback = &fbCopy
			return nil
		}
	}
	return ErrNotFound
}
