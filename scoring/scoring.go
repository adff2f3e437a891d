// Package scoring computes fantasy points from projected stat lines.
package scoring

import (
	"math"

	"github.com/mww/fantasy_rankings/model"
	"github.com/shopspring/decimal"
)

// Stats is a single projected stat line. Missing stats are zero.
type Stats struct {
	PassingYards         float64
	PassingTouchdowns    float64
	PassingInterceptions float64
	RushingYards         float64
	RushingTouchdowns    float64
	Receptions           float64
	ReceivingYards       float64
	ReceivingTouchdowns  float64
	FumblesLost          float64
}

// FantasyPoints scores s under mode. An unknown mode scores like standard.
//
// The total is rounded to two decimal places on its exact binary value with
// ties going to the even digit, so 3.125 becomes 3.12 and 2.675 (stored as
// 2.67499...) becomes 2.67.
func FantasyPoints(s Stats, mode model.ScoringMode) float64 {
	pts := s.PassingYards/25 + s.RushingYards/10 + s.ReceivingYards/10
	pts += s.PassingTouchdowns*4 + s.RushingTouchdowns*6 + s.ReceivingTouchdowns*6
	pts -= s.PassingInterceptions*2 + s.FumblesLost*2

	switch mode {
	case model.SCORING_PPR:
		pts += s.Receptions
	case model.SCORING_HALF:
		pts += s.Receptions * 0.5
	}

	return round2(pts)
}

// exactExponent is small enough that NewFromFloatWithExponent keeps every
// binary digit of a float64.
const exactExponent = -1074

func round2(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return decimal.NewFromFloatWithExponent(f, exactExponent).RoundBank(2).InexactFloat64()
}
