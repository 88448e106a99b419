package player

import (
	"fmt"
	"strconv"
)

// Season types accepted by the shot chart endpoint.
const (
	SeasonTypeRegular  = "Regular Season"
	SeasonTypePlayoffs = "Playoffs"
)

const (
	minSeasonYear = 1946
	maxSeasonYear = 2030
)

// SeasonLabel formats the season starting in startYear, e.g. 2023 -> "2023-24".
func SeasonLabel(startYear int) string {
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// ParseSeason validates a YYYY-YY label and returns its start year.
func ParseSeason(label string) (int, error) {
	if len(label) != 7 || label[4] != '-' {
		return 0, fmt.Errorf("season must be in format YYYY-YY (e.g. \"2023-24\")")
	}
	start, err := strconv.Atoi(label[:4])
	if err != nil {
		return 0, fmt.Errorf("season must contain valid years")
	}
	end, err := strconv.Atoi(label[5:])
	if err != nil {
		return 0, fmt.Errorf("season must contain valid years")
	}
	if start < minSeasonYear || start > maxSeasonYear {
		return 0, fmt.Errorf("season year must be between %d and %d", minSeasonYear, maxSeasonYear)
	}
	if expected := (start + 1) % 100; end != expected {
		return 0, fmt.Errorf("invalid season sequence, expected %d-%02d", start, expected)
	}
	return start, nil
}

// SeasonLabels lists seasons from lastYear down to firstYear inclusive.
func SeasonLabels(firstYear, lastYear int) []string {
	if lastYear < firstYear {
		return []string{}
	}
	labels := make([]string, 0, lastYear-firstYear+1)
	for year := lastYear; year >= firstYear; year-- {
		labels = append(labels, SeasonLabel(year))
	}
	return labels
}

// ValidSeasonType reports whether t is a supported season type.
func ValidSeasonType(t string) bool {
	return t == SeasonTypeRegular || t == SeasonTypePlayoffs
}
