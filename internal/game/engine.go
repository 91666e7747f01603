package game

import "psgdle/internal/models"

// PlayerSource is the read-only roster view the engines draw targets
// and guesses from.
type PlayerSource interface {
	Players() []models.Player
	PhotoPool() []models.Player
	PlayerByID(id int) (*models.Player, bool)
}

// MatchSource supplies the lineup variant's match records and formation
// templates.
type MatchSource interface {
	Matches() []models.Match
	FormationFor(m *models.Match) (*models.Formation, bool)
}

// Engine is the capability set shared by all three variant state
// machines. A fresh engine is built for today's seed on every request
// and mutated through variant-specific operations.
type Engine interface {
	Mode() string
	Phase() models.Phase
	Attempts() int
	Hints() models.HintState

	// Session serializes the replayable inputs of the current state.
	Session() *models.Session
	// Restore replays a stored session into this engine. It reports
	// false when the session belongs to another day, another target or
	// another variant; the caller must then discard it entirely.
	Restore(sess *models.Session) bool

	StatsRecorded() bool
	MarkStatsRecorded()
}

// GuessEngine is implemented by the variants whose attempts are single
// player guesses (classic and photo).
type GuessEngine interface {
	Engine
	// SubmitGuess applies one guess. It reports false when the guess
	// was silently rejected: unknown id, duplicate id, or a session
	// already in a terminal phase. Rejected guesses mutate nothing.
	SubmitGuess(playerID int) bool
	Guesses() []models.GuessRecord
	Target() *models.Player
}
