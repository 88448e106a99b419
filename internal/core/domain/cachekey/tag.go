package cachekey

import "time"

// Tag is the namespace discriminator for a kind of cached query. It selects both
// the TTL policy and the key namespace.
type Tag string

const (
	TagPlayerSearch Tag = "player_search"
	TagPlayerInfo   Tag = "player_info"
	TagPlayerShots  Tag = "player_shots"
	TagPlayerStats  Tag = "player_stats"
	TagSeasons      Tag = "seasons"
)

// DefaultTTL applies to tags without an explicit policy.
const DefaultTTL = 900 * time.Second

var ttlPolicy = map[Tag]time.Duration{
	TagPlayerSearch: time.Hour,
	TagPlayerInfo:   time.Hour,
	TagPlayerShots:  30 * time.Minute,
	TagPlayerStats:  30 * time.Minute,
	TagSeasons:      24 * time.Hour,
}

// TTL returns the time-to-live for values cached under tag.
func TTL(tag Tag) time.Duration {
	if ttl, ok := ttlPolicy[tag]; ok {
		return ttl
	}
	return DefaultTTL
}

func (t Tag) String() string { return string(t) }
