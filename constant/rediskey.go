package constant

import "fmt"

const (
	BasePrefix = "shrinklink:"
	Separator  = ":"
)

// Redis key templates
const (
	LinkCache     = BasePrefix + "link" + Separator + "%s"    // shrinklink:link:<shortcode>, cached record (empty = negative)
	PendingClicks = BasePrefix + "clicks" + Separator + "%s"  // shrinklink:clicks:<shortcode>, buffered increments
	RateLimit     = BasePrefix + "ratelim" + Separator + "%s" // shrinklink:ratelim:<clientkey>, fixed-window counter
)

// Cache TTLs in seconds
const (
	LinkCacheTTL         = 3600
	NegativeLinkCacheTTL = 300
)

// GetLinkCacheKey returns the cache key for a resolved short code.
func GetLinkCacheKey(shortCode string) string {
	return fmt.Sprintf(LinkCache, shortCode)
}

// GetPendingClicksKey returns the buffered click counter key for a short code.
func GetPendingClicksKey(shortCode string) string {
	return fmt.Sprintf(PendingClicks, shortCode)
}

// GetRateLimitKey returns the fixed-window counter key for a client.
func GetRateLimitKey(clientKey string) string {
	return fmt.Sprintf(RateLimit, clientKey)
}
