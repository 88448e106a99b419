package cachekey

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

const (
	// Namespace prefixes every key produced by Derive.
	Namespace = "nba_shotchart:"

	// MaxArgsLength is the longest argument string kept verbatim in a key.
	MaxArgsLength = 100
)

// Args are the call arguments of a cached query. Values must be primitives
// (string, integer, bool).
type Args struct {
	Positional []any
	Named      map[string]any
}

// Positional builds Args from positional values only.
func Positional(values ...any) Args {
	return Args{Positional: values}
}

// With returns a copy of a with the named value set.
func (a Args) With(name string, value any) Args {
	named := make(map[string]any, len(a.Named)+1)
	for k, v := range a.Named {
		named[k] = v
	}
	named[name] = value
	return Args{Positional: a.Positional, Named: named}
}

// String renders the arguments: positional values in call order, then named
// values sorted by name as name:value, all joined by ':'.
func (a Args) String() string {
	parts := make([]string, 0, len(a.Positional)+len(a.Named))
	for _, v := range a.Positional {
		parts = append(parts, fmt.Sprint(v))
	}
	names := make([]string, 0, len(a.Named))
	for name := range a.Named {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s:%v", name, a.Named[name]))
	}
	return strings.Join(parts, ":")
}

// Derive builds the cache key for tag and args. Argument strings longer than
// MaxArgsLength are replaced by "hash:<md5>" so keys stay bounded.
func Derive(tag Tag, args Args) string {
	s := args.String()
	if len(s) > MaxArgsLength {
		sum := md5.Sum([]byte(s))
		s = "hash:" + hex.EncodeToString(sum[:])
	}
	return Namespace + string(tag) + ":" + s
}

// Prefix returns the key prefix shared by every key of tag whose first
// positional argument is first.
func Prefix(tag Tag, first any) string {
	return Namespace + string(tag) + ":" + fmt.Sprint(first) + ":"
}
