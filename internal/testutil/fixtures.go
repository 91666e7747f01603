package testutil

import (
	"fmt"

	"psgdle/internal/models"
)

// Roster is an in-memory stand-in for the dataset, implementing the
// engines' PlayerSource and MatchSource.
type Roster struct {
	players    []models.Player
	photoPool  []models.Player
	matches    []models.Match
	formations map[string]models.Formation
	byID       map[int]*models.Player
}

func NewRoster(players ...models.Player) *Roster {
	r := &Roster{
		players:    players,
		formations: make(map[string]models.Formation),
		byID:       make(map[int]*models.Player),
	}
	for i := range r.players {
		p := &r.players[i]
		r.byID[p.ID] = p
		if p.Photo != "" {
			r.photoPool = append(r.photoPool, *p)
		}
	}
	return r
}

func (r *Roster) WithMatches(formations map[string]models.Formation, matches ...models.Match) *Roster {
	r.formations = formations
	r.matches = matches
	return r
}

func (r *Roster) Ready() bool                { return len(r.players) > 0 }
func (r *Roster) Players() []models.Player   { return r.players }
func (r *Roster) PhotoPool() []models.Player { return r.photoPool }
func (r *Roster) Matches() []models.Match    { return r.matches }

func (r *Roster) PlayerByID(id int) (*models.Player, bool) {
	p, ok := r.byID[id]
	return p, ok
}

func (r *Roster) FormationFor(m *models.Match) (*models.Formation, bool) {
	f, ok := r.formations[m.Formation]
	if !ok {
		return nil, false
	}
	return &f, true
}

// SomePlayers builds n distinct players with photos and spread-out
// attribute values.
func SomePlayers(n int) []models.Player {
	players := make([]models.Player, 0, n)
	nationalities := []string{"France", "Brazil", "Argentina", "Italy", "Spain"}
	positions := []string{"GK", "DEF", "MID", "ATT"}
	for i := 1; i <= n; i++ {
		players = append(players, models.Player{
			ID:            i,
			Name:          fmt.Sprintf("Player %d", i),
			Nationality:   nationalities[i%len(nationalities)],
			Age:           20 + i%15,
			Position:      positions[i%len(positions)],
			Number:        i,
			Height:        170 + i%25,
			TrainedAtClub: i%3 == 0,
			Matches:       10 * i,
			TransferFee:   fmt.Sprintf("%dM", i),
			ClubPeriod:    "2015-2020",
			CareerPath:    "Academy, First team",
			Photo:         fmt.Sprintf("photos/%d.png", i),
		})
	}
	return players
}

// Formation433 is an 11-slot template with the canonical line labels.
func Formation433() map[string]models.Formation {
	return map[string]models.Formation{
		"4-3-3": {
			Name: "4-3-3",
			Structure: []models.FormationLine{
				{Line: "GK", Positions: []string{"GK1"}},
				{Line: "DEF", Positions: []string{"DEF1", "DEF2", "DEF3", "DEF4"}},
				{Line: "MID", Positions: []string{"MID1", "MID2", "MID3"}},
				{Line: "ATT", Positions: []string{"ATT1", "ATT2", "ATT3"}},
			},
		},
	}
}
