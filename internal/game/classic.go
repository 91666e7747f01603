package game

import (
	"sort"

	"psgdle/internal/models"
)

// Classic hint tiers: slots appear after the first attempt, content
// unlocks at 5/9/13 attempts.
const (
	HintTransferFee = "transferFee"
	HintClubPeriod  = "clubPeriod"
	HintCareerPath  = "careerPath"
)

var classicHintTiers = []struct {
	name      string
	visibleAt int
	unlockAt  int
}{
	{HintTransferFee, 1, 5},
	{HintClubPeriod, 1, 9},
	{HintCareerPath, 1, 13},
}

// ClassicEngine is the attribute-comparison variant: unlimited attempts,
// per-attribute verdicts on every guess, win on identity.
type ClassicEngine struct {
	src           PlayerSource
	seed          int
	target        *models.Player
	guesses       []models.GuessRecord
	guessed       map[int]struct{}
	phase         models.Phase
	hints         models.HintState
	statsRecorded bool
}

func NewClassicEngine(src PlayerSource, seed int) (*ClassicEngine, error) {
	target, err := SelectDaily(src.Players(), seed)
	if err != nil {
		return nil, err
	}

	e := &ClassicEngine{
		src:     src,
		seed:    seed,
		target:  target,
		guessed: make(map[int]struct{}),
		phase:   models.PhaseNotStarted,
		hints:   make(models.HintState, len(classicHintTiers)),
	}
	for _, tier := range classicHintTiers {
		e.hints[tier.name] = &models.HintStatus{VisibleAt: tier.visibleAt, UnlockAt: tier.unlockAt}
	}
	return e, nil
}

func (e *ClassicEngine) Mode() string           { return ModeClassic }
func (e *ClassicEngine) Phase() models.Phase    { return e.phase }
func (e *ClassicEngine) Attempts() int          { return len(e.guesses) }
func (e *ClassicEngine) Target() *models.Player { return e.target }
func (e *ClassicEngine) StatsRecorded() bool    { return e.statsRecorded }
func (e *ClassicEngine) MarkStatsRecorded()     { e.statsRecorded = true }

func (e *ClassicEngine) Guesses() []models.GuessRecord {
	out := make([]models.GuessRecord, len(e.guesses))
	copy(out, e.guesses)
	return out
}

func (e *ClassicEngine) SubmitGuess(playerID int) bool {
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

	verdict := Evaluate(player, e.target)
	e.guessed[playerID] = struct{}{}
	e.guesses = append(e.guesses, models.GuessRecord{
		PlayerID:      player.ID,
		PlayerName:    player.Name,
		AttemptNumber: len(e.guesses) + 1,
		Correct:       verdict.IsTarget,
		Verdict:       verdict,
	})

	if verdict.IsTarget {
		e.phase = models.PhaseWon
	} else {
		e.phase = models.PhaseInProgress
	}
	e.refreshHints()
	return true
}

// refreshHints re-applies the unlock thresholds against the current
// attempt count. Only ever flips flags from false to true.
func (e *ClassicEngine) refreshHints() {
	attempts := len(e.guesses)
	for name, hint := range e.hints {
		if attempts >= hint.VisibleAt {
			hint.Visible = true
		}
		if attempts >= hint.UnlockAt {
			hint.Unlocked = true
			hint.Value = e.hintValue(name)
		}
	}
}

func (e *ClassicEngine) hintValue(name string) string {
	switch name {
	case HintTransferFee:
		return e.target.TransferFee
	case HintClubPeriod:
		return e.target.ClubPeriod
	case HintCareerPath:
		return e.target.CareerPath
	}
	return ""
}

// ToggleHint flips the revealed flag of an unlocked hint. Locked hints
// are untouchable.
func (e *ClassicEngine) ToggleHint(name string) bool {
	hint, ok := e.hints[name]
	if !ok || !hint.Unlocked {
		return false
	}
	hint.Revealed = !hint.Revealed
	return true
}

func (e *ClassicEngine) Hints() models.HintState {
	out := make(models.HintState, len(e.hints))
	for name, hint := range e.hints {
		copied := *hint
		out[name] = &copied
	}
	return out
}

func (e *ClassicEngine) Session() *models.Session {
	sess := &models.Session{
		DateSeed:      e.seed,
		Mode:          ModeClassic,
		TargetID:      e.target.ID,
		StatsRecorded: e.statsRecorded,
	}
	for _, g := range e.guesses {
		sess.GuessIDs = append(sess.GuessIDs, g.PlayerID)
	}
	for name, hint := range e.hints {
		if hint.Revealed {
			sess.Revealed = append(sess.Revealed, name)
		}
	}
	sort.Strings(sess.Revealed)
	return sess
}

func (e *ClassicEngine) Restore(sess *models.Session) bool {
	if sess.Mode != ModeClassic || sess.DateSeed != e.seed || sess.TargetID != e.target.ID {
		return false
	}
	for _, id := range sess.GuessIDs {
		e.SubmitGuess(id)
	}
	for _, name := range sess.Revealed {
		if hint, ok := e.hints[name]; ok && hint.Unlocked {
			hint.Revealed = true
		}
	}
	e.statsRecorded = sess.StatsRecorded
	return true
}
