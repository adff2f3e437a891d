package model

// Ranking is one provider's placement of a player for a position and week.
// Rank starts at 1 and has no gaps within a single provider's result.
type Ranking struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Position   string `json:"position"`
	Week       int    `json:"week"`
	Rank       int    `json:"rank"`
	Source     string `json:"source"`
}

// Less orders rankings by rank, then player name. Source and player id break any
// remaining ties so merged results are deterministic.
func (r *Ranking) Less(o *Ranking) bool {
	if r.Rank != o.Rank {
		return r.Rank < o.Rank
	}
	if r.PlayerName != o.PlayerName {
		return r.PlayerName < o.PlayerName
	}
	if r.Source != o.Source {
		return r.Source < o.Source
	}
	return r.PlayerID < o.PlayerID
}
