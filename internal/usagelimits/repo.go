package usagelimits

import "context"

// Repo defines persistence operations for usage limits. Records are created
// and mutated outside this service except for the used counters, which the
// analyze path increments.
type Repo interface {
	List(ctx context.Context) ([]UsageLimit, error)
	GetByDate(ctx context.Context, date string) (UsageLimit, error)
	IncrementUsed(ctx context.Context, date, tier string) error
}
