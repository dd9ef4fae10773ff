package entitlement

import "llmarena_backend/internal/model"

// TierFromLevel derives the coarse tier from a plan's numeric level. The
// mapping is monotonic: raising a plan's level never lowers its tier.
func TierFromLevel(level int) model.SubscriptionTier {
	if level >= 3 {
		return model.TierEnterprise
	}
	if level >= 2 {
		return model.TierPro
	}
	return model.TierFree
}

func TierToLevel(tier model.SubscriptionTier) int {
	switch tier {
	case model.TierEnterprise:
		return 3
	case model.TierPro:
		return 2
	default:
		return 1
	}
}
