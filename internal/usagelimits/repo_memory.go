package usagelimits

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	data []UsageLimit
}

// NewMemoryRepo constructs an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Seed inserts a record, assigning an id, and returns it. Insertion order
// is preserved by List, mirroring the collection's natural order.
func (r *MemoryRepo) Seed(rec UsageLimit) UsageLimit {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = primitive.NewObjectID().Hex()
	r.data = append(r.data, rec)
	return rec
}

func (r *MemoryRepo) List(ctx context.Context) ([]UsageLimit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]UsageLimit, len(r.data))
	copy(out, r.data)
	return out, nil
}

func (r *MemoryRepo) GetByDate(ctx context.Context, date string) (UsageLimit, error) {
	if err := ctx.Err(); err != nil {
		return UsageLimit{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.data {
		if rec.Date == date {
			return rec, nil
		}
	}
	return UsageLimit{}, ErrNoRecordForDate
}

func (r *MemoryRepo) IncrementUsed(ctx context.Context, date, tier string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := usedField(tier); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.data {
		if r.data[i].Date != date {
			continue
		}
		if tier == TierJR {
			r.data[i].JrUsed++
		} else {
			r.data[i].SrUsed++
		}
		return nil
	}
	return ErrNoRecordForDate
}
