package apiclient

import "time"

// API paths
const (
	PathBalance                  = "/api/balance"
	PathWithdraw                 = "/api/withdraw"
	PathLogin                    = "/api/admin/login"
	PathLogout                   = "/api/admin/logout"
	PathMe                       = "/api/admin/me"
	PathPromotions               = "/api/promotions"
	PathPromotionAvailabilityFmt = "/api/promotions/%s/availability"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultBalanceTTL = 30 * time.Second

	balanceCacheKey = "balance"
	maxErrorBody    = 64 << 10
)

// Log messages
const (
	LogMsgRequestFailed    = "API request failed"
	LogMsgRequestCompleted = "API request completed"
)
