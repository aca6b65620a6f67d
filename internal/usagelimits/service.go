package usagelimits

import "context"

// Service manages usage limit data via an underlying repo.
type Service struct {
	repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// List returns every usage limit record, storage order.
func (s *Service) List(ctx context.Context) ([]UsageLimit, error) {
	return s.repo.List(ctx)
}

// CheckQuota returns ErrLimitReached when the tier's used counter has met
// its ceiling for the given date. A missing record for the date is an error,
// not an implicit allow.
func (s *Service) CheckQuota(ctx context.Context, date, tier string) error {
	rec, err := s.repo.GetByDate(ctx, date)
	if err != nil {
		return err
	}
	switch tier {
	case TierJR:
		if rec.JrUsed >= rec.JrLimit {
			return ErrLimitReached
		}
	case TierSR:
		if rec.SrUsed >= rec.SrLimit {
			return ErrLimitReached
		}
	default:
		_, err := usedField(tier)
		return err
	}
	return nil
}

// ConsumeUnit bumps the tier's used counter for the given date by one.
func (s *Service) ConsumeUnit(ctx context.Context, date, tier string) error {
	return s.repo.IncrementUsed(ctx, date, tier)
}
