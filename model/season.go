package model

import (
	"fmt"
	"strings"
)

// SeasonType is the segment of the NFL season that a season token refers to.
type SeasonType string

const (
	SEASON_PRE  SeasonType = "PRE"
	SEASON_REG  SeasonType = "REG"
	SEASON_POST SeasonType = "POST"
)

func ParseSeasonType(s string) (SeasonType, error) {
	switch SeasonType(strings.ToUpper(strings.TrimSpace(s))) {
	case SEASON_PRE:
		return SEASON_PRE, nil
	case SEASON_REG, "":
		return SEASON_REG, nil
	case SEASON_POST:
		return SEASON_POST, nil
	default:
		return "", fmt.Errorf("unknown season type: '%s'", s)
	}
}

// Timeframe is the season token and week that represent "now" for rankings.
// Season looks like "2024REG" and should be passed to providers verbatim.
type Timeframe struct {
	Season string `json:"season"`
	Week   int    `json:"week"`
}

func (t Timeframe) String() string {
	return fmt.Sprintf("%s week %d", t.Season, t.Week)
}

// SeasonToken builds a season token like "2024REG".
func SeasonToken(year int, segment SeasonType) string {
	return fmt.Sprintf("%d%s", year, segment)
}

// NormalizeSeason appends the segment to season unless it already ends with
// one. Segments are upper case on the wire, so "2023post" still gets one.
// Surrounding whitespace is dropped.
func NormalizeSeason(season string, segment SeasonType) string {
	season = strings.TrimSpace(season)
	for _, s := range []SeasonType{SEASON_PRE, SEASON_REG, SEASON_POST} {
		if strings.HasSuffix(season, string(s)) {
			return season
		}
	}
	return season + string(segment)
}
