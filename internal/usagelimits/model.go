package usagelimits

// Tier labels for the two model classes tracked per day.
const (
	TierJR = "JR"
	TierSR = "SR"
)

// UsageLimit is a per-date record of consumption and ceilings for the JR
// and SR model tiers. The id is the storage identifier in string form and
// is never settable by callers.
type UsageLimit struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	JrUsed  int    `json:"jrUsed"`
	SrUsed  int    `json:"srUsed"`
	JrLimit int    `json:"jrLimit"`
	SrLimit int    `json:"srLimit"`
}
