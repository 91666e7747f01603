package game

import "psgdle/internal/models"

// PhotoMaxAttempts is the fixed guess budget of the photo variant; the
// session is lost once it is exhausted.
const PhotoMaxAttempts = 6

// PhotoEngine is the blurred-photo variant: identity-only evaluation
// against the photo pool, a shifted seed, and a loss state.
type PhotoEngine struct {
	src           PlayerSource
	seed          int
	target        *models.Player
	guesses       []models.GuessRecord
	guessed       map[int]struct{}
	phase         models.Phase
	statsRecorded bool
}

func NewPhotoEngine(src PlayerSource, seed int) (*PhotoEngine, error) {
	target, err := SelectDaily(src.PhotoPool(), seed+PhotoSeedOffset)
	if err != nil {
		return nil, err
	}
	return &PhotoEngine{
		src:     src,
		seed:    seed,
		target:  target,
		guessed: make(map[int]struct{}),
		phase:   models.PhaseNotStarted,
	}, nil
}

func (e *PhotoEngine) Mode() string           { return ModePhoto }
func (e *PhotoEngine) Phase() models.Phase    { return e.phase }
func (e *PhotoEngine) Attempts() int          { return len(e.guesses) }
func (e *PhotoEngine) MaxAttempts() int       { return PhotoMaxAttempts }
func (e *PhotoEngine) Target() *models.Player { return e.target }
func (e *PhotoEngine) StatsRecorded() bool    { return e.statsRecorded }
func (e *PhotoEngine) MarkStatsRecorded()     { e.statsRecorded = true }

// The photo variant has no toggleable hints; the sharpening photo is
// the hint.
func (e *PhotoEngine) Hints() models.HintState { return models.HintState{} }

func (e *PhotoEngine) Guesses() []models.GuessRecord {
	out := make([]models.GuessRecord, len(e.guesses))
	copy(out, e.guesses)
	return out
}

// BlurLevel is a pure function of the attempt count: level 1 (fully
// blurred) before any guess, stepping up to the cap. A finished game
// shows the photo sharp.
func (e *PhotoEngine) BlurLevel() int {
	if e.phase.Terminal() {
		return 0
	}
	return min(len(e.guesses)+1, PhotoMaxAttempts)
}

func (e *PhotoEngine) SubmitGuess(playerID int) bool {
	if e.phase.Terminal() {
		return false
	}
	player, ok := e.src.PlayerByID(playerID)
	if !ok {
		return false
	}
	if _, dup := e.guessed[playerID]; dup {
		return false
	}

	correct := player.ID == e.target.ID
	e.guessed[playerID] = struct{}{}
	e.guesses = append(e.guesses, models.GuessRecord{
		PlayerID:      player.ID,
		PlayerName:    player.Name,
		AttemptNumber: len(e.guesses) + 1,
		Correct:       correct,
	})

	switch {
	case correct:
		e.phase = models.PhaseWon
	case len(e.guesses) >= PhotoMaxAttempts:
		e.phase = models.PhaseLost
	default:
		e.phase = models.PhaseInProgress
	}
	return true
}

func (e *PhotoEngine) Session() *models.Session {
	sess := &models.Session{
		DateSeed:      e.seed,
		Mode:          ModePhoto,
		TargetID:      e.target.ID,
		StatsRecorded: e.statsRecorded,
	}
	for _, g := range e.guesses {
		sess.GuessIDs = append(sess.GuessIDs, g.PlayerID)
	}
	return sess
}

func (e *PhotoEngine) Restore(sess *models.Session) bool {
	if sess.Mode != ModePhoto || sess.DateSeed != e.seed || sess.TargetID != e.target.ID {
		return false
	}
	for _, id := range sess.GuessIDs {
		e.SubmitGuess(id)
	}
	e.statsRecorded = sess.StatsRecorded
	return true
}
