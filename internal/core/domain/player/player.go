package player

import (
	"fmt"
	"strings"
)

const headshotURLFormat = "https://cdn.nba.com/headshots/nba/latest/1040x760/%d.png"

// Player is the normalized player shape returned to clients.
type Player struct {
	ID           int    `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	FullName     string `json:"fullName"`
	TeamID       int    `json:"teamId"`
	TeamName     string `json:"teamName"`
	Position     string `json:"position"`
	JerseyNumber string `json:"jerseyNumber"`
	ImageURL     string `json:"imageUrl"`
}

// CatalogEntry is one row of the upstream player catalog.
type CatalogEntry struct {
	ID        int
	FirstName string
	LastName  string
	FullName  string
	IsActive  bool
}

// Details holds the enrichment fields from the player info endpoint.
// Missing upstream fields are zero values.
type Details struct {
	TeamID   int
	TeamName string
	Position string
	Jersey   string
}

// HeadshotURL returns the CDN headshot image for a player id.
func HeadshotURL(id int) string {
	return fmt.Sprintf(headshotURLFormat, id)
}

// FromCatalog builds a Player with identity fields only.
func FromCatalog(e CatalogEntry) Player {
	full := strings.TrimSpace(e.FullName)
	if full == "" {
		full = strings.TrimSpace(strings.TrimSpace(e.FirstName) + " " + strings.TrimSpace(e.LastName))
	}
	return Player{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		FullName:  full,
		ImageURL:  HeadshotURL(e.ID),
	}
}

// Enrich copies team, position and jersey from d.
func (p *Player) Enrich(d Details) {
	p.TeamID = d.TeamID
	p.TeamName = d.TeamName
	p.Position = d.Position
	p.JerseyNumber = d.Jersey
}

// Matches reports whether the lowercased query is a substring of the full,
// first or last name.
func (e CatalogEntry) Matches(lowerQuery string) bool {
	return strings.Contains(strings.ToLower(e.FullName), lowerQuery) ||
		strings.Contains(strings.ToLower(e.FirstName), lowerQuery) ||
		strings.Contains(strings.ToLower(e.LastName), lowerQuery)
}

// Valid reports whether the entry can be exposed as a Player.
func (e CatalogEntry) Valid() bool {
	return e.ID > 0 && strings.TrimSpace(e.FullName+e.FirstName+e.LastName) != ""
}
