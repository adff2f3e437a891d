package sleeper

import (
	"github.com/mww/fantasy_rankings/model"
)

type sleeperPlayer struct {
	ID        string `json:"player_id"`
	FullName  string `json:"full_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Team      string `json:"team"`
}

// toPlayer converts the raw record. Team defenses have no full_name in
// Sleeper's data, so fall back to last_name and then to the unknown marker.
func (p *sleeperPlayer) toPlayer(key string) model.Player {
	id := key
	if id == "" {
		id = p.ID
	}
	return model.Player{
		ID:       model.PlayerID(id),
		Name:     model.FirstNonEmpty(p.FullName, p.LastName),
		Team:     p.Team,
		Position: p.Position,
	}
}
