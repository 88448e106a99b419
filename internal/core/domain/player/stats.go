package player

// Stats is a season shooting aggregate.
type Stats struct {
	TotalAttempts        int     `json:"totalAttempts"`
	TotalMade            int     `json:"totalMade"`
	FieldGoalPercentage  float64 `json:"fieldGoalPercentage"`
	ThreePointAttempts   int     `json:"threePointAttempts"`
	ThreePointMade       int     `json:"threePointMade"`
	ThreePointPercentage float64 `json:"threePointPercentage"`
	AverageShotDistance  float64 `json:"averageShotDistance"`
}

// SeasonTotals is one season row of a provider dashboard or career table.
type SeasonTotals struct {
	SeasonID string
	FGM      int
	FGA      int
	FGPct    float64
	FG3M     int
	FG3A     int
	FG3Pct   float64
}

// ZeroStats is the renderable aggregate used when no data is available.
func ZeroStats() Stats {
	return Stats{}
}

// StatsFromTotals converts a totals row. Percentages are taken as reported.
func StatsFromTotals(t SeasonTotals) Stats {
	return Stats{
		TotalAttempts:        t.FGA,
		TotalMade:            t.FGM,
		FieldGoalPercentage:  t.FGPct,
		ThreePointAttempts:   t.FG3A,
		ThreePointMade:       t.FG3M,
		ThreePointPercentage: t.FG3Pct,
	}
}

// Consistent reports whether the aggregate satisfies its data contract:
// made <= attempts and percentages within [0,1].
func (s Stats) Consistent() bool {
	if s.TotalMade > s.TotalAttempts || s.ThreePointMade > s.ThreePointAttempts {
		return false
	}
	return inUnitRange(s.FieldGoalPercentage) && inUnitRange(s.ThreePointPercentage)
}

func inUnitRange(v float64) bool { return v >= 0 && v <= 1 }
