package player

import "fmt"

const (
	FirstPeriod = 1
	LastPeriod  = 4
)

// Shot is a single normalized field goal attempt.
type Shot struct {
	ID            string `json:"id"`
	LocationX     int    `json:"locationX"`
	LocationY     int    `json:"locationY"`
	ShotDistance  int    `json:"shotDistance"`
	ShotMade      bool   `json:"shotMade"`
	ShotType      string `json:"shotType"`
	Period        int    `json:"period"`
	TimeRemaining string `json:"timeRemaining"`
	ShotZone      string `json:"shotZone"`
}

// ShotRow is one decoded shot detail row from the provider.
type ShotRow struct {
	GameID           string
	GameEventID      string
	LocX             int
	LocY             int
	ShotDistance     int
	ShotMadeFlag     int
	ShotType         string
	Period           int
	MinutesRemaining int
	SecondsRemaining int
	ShotZoneBasic    string
}

// ShotFromRow maps a provider row to a Shot. ok is false for rows outside the
// modelled periods (overtime).
func ShotFromRow(r ShotRow) (Shot, bool) {
	if r.Period < FirstPeriod || r.Period > LastPeriod {
		return Shot{}, false
	}
	distance := r.ShotDistance
	if distance < 0 {
		distance = 0
	}
	return Shot{
		ID:            fmt.Sprintf("shot_%s_%s", r.GameID, r.GameEventID),
		LocationX:     r.LocX,
		LocationY:     r.LocY,
		ShotDistance:  distance,
		ShotMade:      r.ShotMadeFlag != 0,
		ShotType:      r.ShotType,
		Period:        r.Period,
		TimeRemaining: FormatClock(r.MinutesRemaining, r.SecondsRemaining),
		ShotZone:      r.ShotZoneBasic,
	}, true
}

// FormatClock renders a game clock as m:ss.
func FormatClock(minutes, seconds int) string {
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
