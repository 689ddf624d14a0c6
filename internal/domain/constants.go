package domain

const (
	AuthProviderLocal = "local"
	AuthProviderGuest = "guest"
)

const (
	UnlockMethodFree    = "free"
	UnlockMethodAd      = "ad"
	UnlockMethodCoins   = "coins"
	UnlockMethodPremium = "premium"
)

const (
	TxTypeEarn          = "earn"
	TxTypeSpend         = "spend"
	TxTypePurchase      = "purchase"
	TxTypeEpisodeUnlock = "episode_unlock"
	TxTypeAdReward      = "ad_reward"
)

const (
	PlanWeekly  = "weekly"
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
)

const (
	SubStatusActive   = "active"
	SubStatusCanceled = "canceled"
	SubStatusExpired  = "expired"
)

const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
)
