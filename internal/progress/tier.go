package progress

// Tier is the escalating intensity of an accountability message
type Tier string

const (
	TierGentle Tier = "gentle"
	TierFirm   Tier = "firm"
	TierHarsh  Tier = "harsh"
	TierBrutal Tier = "brutal"
)

// Tiers lists every tier from mildest to harshest
var Tiers = []Tier{TierGentle, TierFirm, TierHarsh, TierBrutal}

// TierFor maps consecutive missed days to a severity tier.
// Every notification channel and dashboard badge must go through this function.
func TierFor(missedDays int) Tier {
	switch {
	case missedDays >= 7:
		return TierBrutal
	case missedDays >= 5:
		return TierHarsh
	case missedDays >= 3:
		return TierFirm
	default:
		return TierGentle
	}
}

// Rank orders tiers by severity, gentle being 0
func (t Tier) Rank() int {
	for i, tier := range Tiers {
		if tier == t {
			return i
		}
	}
	return -1
}

func (t Tier) String() string {
	return string(t)
}
