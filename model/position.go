package model

import (
	"strings"
)

// Position is an upper-case position token such as QB, RB, WR, TE, K or DEF.
// Providers may report positions we have never heard of, so this is not an enum.
type Position string

const (
	POS_UNKNOWN Position = ""
	POS_QB      Position = "QB"
	POS_RB      Position = "RB"
	POS_WR      Position = "WR"
	POS_TE      Position = "TE"
)

func ParsePosition(pos string) Position {
	return Position(strings.ToUpper(strings.TrimSpace(pos)))
}

// Matches reports whether a raw provider position is the same as p, ignoring case.
func (p Position) Matches(raw string) bool {
	return p != POS_UNKNOWN && ParsePosition(raw) == p
}

func (p Position) String() string {
	return string(p)
}
