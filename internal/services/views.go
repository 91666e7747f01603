package services

import (
	"psgdle/internal/game"
	"psgdle/internal/models"
)

// StateView is the wire representation of a session after an operation.
// Variant-specific sections are nil for the other variants.
type StateView struct {
	Mode              string                `json:"mode"`
	Phase             models.Phase          `json:"phase"`
	Attempts          int                   `json:"attempts"`
	Guesses           []models.GuessRecord  `json:"guesses,omitempty"`
	Hints             models.HintState      `json:"hints,omitempty"`
	Photo             *PhotoView            `json:"photo,omitempty"`
	Lineup            *LineupView           `json:"lineup,omitempty"`
	Target            *models.PlayerSummary `json:"target,omitempty"`
	NextGameInSeconds int                   `json:"nextGameInSeconds"`
}

type PhotoView struct {
	URL         string `json:"url"`
	BlurLevel   int    `json:"blurLevel"`
	MaxAttempts int    `json:"maxAttempts"`
}

type LineupView struct {
	Opponent    string     `json:"opponent"`
	Date        string     `json:"date"`
	Score       string     `json:"score"`
	Formation   string     `json:"formation"`
	Slots       []SlotView `json:"slots"`
	PlacedCount int        `json:"placedCount"`
	SlotCount   int        `json:"slotCount"`
	CanValidate bool       `json:"canValidate"`
}

// SlotView flattens one formation slot: current occupant, the verdict of
// the last validation and any unlocked hints about who belongs there.
type SlotView struct {
	Position   string            `json:"position"`
	Line       string            `json:"line"`
	PlayerID   int               `json:"playerId,omitempty"`
	PlayerName string            `json:"playerName,omitempty"`
	Status     string            `json:"status,omitempty"`
	Hints      map[string]string `json:"hints,omitempty"`
}

// StatsView extends the stored lifetime record with the derived figures
// clients would otherwise recompute.
type StatsView struct {
	models.LifetimeStats
	WinRate         int     `json:"winRate"`
	AverageAttempts float64 `json:"averageAttempts"`
}

type SurpriseView struct {
	Mode     string `json:"mode"`
	TargetID int    `json:"targetId"`
	Label    string `json:"label"`
}

func (s *GameService) view(eng game.Engine) *StateView {
	view := &StateView{
		Mode:              eng.Mode(),
		Phase:             eng.Phase(),
		Attempts:          eng.Attempts(),
		Hints:             eng.Hints(),
		NextGameInSeconds: int(game.NextGameIn(s.now()).Seconds()),
	}

	switch e := eng.(type) {
	case *game.ClassicEngine:
		view.Guesses = e.Guesses()
		if e.Phase().Terminal() {
			target := e.Target().Summary()
			view.Target = &target
		}
	case *game.PhotoEngine:
		view.Guesses = e.Guesses()
		view.Photo = &PhotoView{
			URL:         e.Target().Photo,
			BlurLevel:   e.BlurLevel(),
			MaxAttempts: e.MaxAttempts(),
		}
		if e.Phase().Terminal() {
			target := e.Target().Summary()
			view.Target = &target
		}
	case *game.LineupEngine:
		view.Lineup = s.lineupView(e)
	}
	return view
}

func (s *GameService) lineupView(e *game.LineupEngine) *LineupView {
	match := e.Match()
	placements := e.Placements()
	verdicts := e.SlotVerdicts()
	slotHints := e.SlotHints()

	view := &LineupView{
		Opponent:    match.Opponent,
		Date:        match.Date,
		Score:       match.Score,
		Formation:   match.Formation,
		PlacedCount: e.PlacedCount(),
		SlotCount:   e.SlotCount(),
		CanValidate: e.CanValidate(),
	}

	for _, line := range e.Formation().Structure {
		for _, position := range line.Positions {
			slot := SlotView{
				Position: position,
				Line:     line.Line,
				Status:   verdicts[position],
				Hints:    slotHints[position],
			}
			if id, occupied := placements[position]; occupied {
				slot.PlayerID = id
				if player, ok := s.ds.PlayerByID(id); ok {
					slot.PlayerName = player.Name
				}
			}
			view.Slots = append(view.Slots, slot)
		}
	}
	return view
}
