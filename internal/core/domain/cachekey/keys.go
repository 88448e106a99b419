package cachekey

import "strings"

// Key builders for the queries served by the player service. Warmup and cache
// administration derive the same keys through these helpers.

func SearchKey(lowerQuery string, limit int) string {
	return Derive(TagPlayerSearch, Positional(lowerQuery, limit))
}

func PlayerInfoKey(playerID int) string {
	return Derive(TagPlayerInfo, Positional(playerID))
}

func PlayerShotsKey(playerID int, season, seasonType string) string {
	return Derive(TagPlayerShots, Positional(playerID, season, seasonType))
}

func PlayerStatsKey(playerID int, season string) string {
	return Derive(TagPlayerStats, Positional(playerID, season))
}

func SeasonsKey() string {
	return Derive(TagSeasons, Args{})
}

// TagOf extracts the data type tag from a derived key, or "" when key is not
// in the namespace.
func TagOf(key string) Tag {
	rest, ok := strings.CutPrefix(key, Namespace)
	if !ok {
		return ""
	}
	tag, _, _ := strings.Cut(rest, ":")
	return Tag(tag)
}
