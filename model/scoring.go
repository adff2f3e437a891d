package model

import (
	"fmt"
	"strings"
)

type ScoringMode string

const (
	SCORING_PPR      ScoringMode = "ppr"
	SCORING_HALF     ScoringMode = "half"
	SCORING_STANDARD ScoringMode = "standard"
)

func ParseScoringMode(s string) (ScoringMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ppr":
		return SCORING_PPR, nil
	case "half":
		return SCORING_HALF, nil
	case "standard":
		return SCORING_STANDARD, nil
	default:
		return "", fmt.Errorf("unknown scoring mode: '%s'", s)
	}
}
