package game

import (
	"fmt"
	"strconv"

	"psgdle/internal/models"
)

// Lineup hint tiers, keyed by validation attempts: heights after the
// first failed validation, shirt numbers after the second, nationalities
// after the third. Hints attach only to slots not yet correct.
const (
	LineupHintHeight      = "height"
	LineupHintNumber      = "number"
	LineupHintNationality = "nationality"
)

var lineupHintTiers = []struct {
	name     string
	unlockAt int
}{
	{LineupHintHeight, 1},
	{LineupHintNumber, 2},
	{LineupHintNationality, 3},
}

// LineupEngine is the lineup-reconstruction variant. Placing players is
// free; an attempt is one validation of a fully filled formation. There
// is no loss state.
type LineupEngine struct {
	players       PlayerSource
	seed          int
	match         *models.Match
	formation     *models.Formation
	placements    map[string]int
	used          map[int]struct{}
	validated     map[string]int
	attempts      int
	verdicts      map[string]string
	phase         models.Phase
	statsRecorded bool
}

func NewLineupEngine(players PlayerSource, matches MatchSource, seed int) (*LineupEngine, error) {
	match, err := SelectDaily(matches.Matches(), seed)
	if err != nil {
		return nil, err
	}
	formation, ok := matches.FormationFor(match)
	if !ok {
		return nil, fmt.Errorf("match %d references unknown formation %q", match.ID, match.Formation)
	}

	return &LineupEngine{
		players:    players,
		seed:       seed,
		match:      match,
		formation:  formation,
		placements: make(map[string]int),
		used:       make(map[int]struct{}),
		verdicts:   make(map[string]string),
		phase:      models.PhaseNotStarted,
	}, nil
}

func (e *LineupEngine) Mode() string                 { return ModeLineup }
func (e *LineupEngine) Phase() models.Phase          { return e.phase }
func (e *LineupEngine) Attempts() int                { return e.attempts }
func (e *LineupEngine) Match() *models.Match         { return e.match }
func (e *LineupEngine) Formation() *models.Formation { return e.formation }
func (e *LineupEngine) StatsRecorded() bool          { return e.statsRecorded }
func (e *LineupEngine) MarkStatsRecorded()           { e.statsRecorded = true }

func (e *LineupEngine) PlacedCount() int { return len(e.placements) }
func (e *LineupEngine) SlotCount() int   { return e.formation.SlotCount() }

func (e *LineupEngine) Placements() map[string]int {
	out := make(map[string]int, len(e.placements))
	for slot, id := range e.placements {
		out[slot] = id
	}
	return out
}

// SlotVerdicts is the per-slot classification of the last validation.
func (e *LineupEngine) SlotVerdicts() map[string]string {
	out := make(map[string]string, len(e.verdicts))
	for slot, status := range e.verdicts {
		out[slot] = status
	}
	return out
}

func (e *LineupEngine) hasSlot(position string) bool {
	for _, line := range e.formation.Structure {
		for _, p := range line.Positions {
			if p == position {
				return true
			}
		}
	}
	return false
}

// Place puts a player on a formation slot, replacing any previous
// occupant of that slot. A player can occupy only one slot, and slots
// already validated as correct are locked.
func (e *LineupEngine) Place(position string, playerID int) bool {
	if e.phase.Terminal() {
		return false
	}
	if !e.hasSlot(position) || e.verdicts[position] == models.StatusCorrect {
		return false
	}
	if _, ok := e.players.PlayerByID(playerID); !ok {
		return false
	}
	if _, taken := e.used[playerID]; taken {
		return false
	}

	if previous, occupied := e.placements[position]; occupied {
		delete(e.used, previous)
	}
	e.placements[position] = playerID
	e.used[playerID] = struct{}{}
	if e.phase == models.PhaseNotStarted {
		e.phase = models.PhaseInProgress
	}
	return true
}

// Clear empties a slot. Correct-locked slots stay.
func (e *LineupEngine) Clear(position string) bool {
	if e.phase.Terminal() || e.verdicts[position] == models.StatusCorrect {
		return false
	}
	id, occupied := e.placements[position]
	if !occupied {
		return false
	}
	delete(e.placements, position)
	delete(e.used, id)
	return true
}

// CanValidate gates validation at the boundary: every slot must hold a
// player. Premature validation is not an error path, it is impossible.
func (e *LineupEngine) CanValidate() bool {
	return !e.phase.Terminal() && len(e.placements) == e.SlotCount()
}

// Validate snapshots the current placements, classifies every slot and
// counts one attempt. Returns false without mutating anything while
// CanValidate does not hold. Verdicts always describe the snapshot, so
// rearranging players after a failed validation never changes phase
// until the next Validate.
func (e *LineupEngine) Validate() bool {
	if !e.CanValidate() {
		return false
	}

	e.attempts++
	e.validated = e.Placements()
	e.verdicts = e.evaluate(e.validated)

	if e.allCorrect() {
		e.phase = models.PhaseWon
	}
	return true
}

// evaluate walks the target lineup line by line: exact slot match is
// correct, a player belonging to the target eleven on the wrong slot
// is misplaced, anything else is incorrect. Line labels were
// normalized at dataset load, so lookup by label is direct.
func (e *LineupEngine) evaluate(placements map[string]int) map[string]string {
	results := make(map[string]string, e.SlotCount())
	targetIDs := e.match.LineupIDs()

	for label, correctIDs := range e.match.Lineup {
		line := e.formationLine(label)
		if line == nil {
			continue
		}
		for i, correctID := range correctIDs {
			position := line.Positions[i]
			placed, ok := placements[position]
			switch {
			case ok && placed == correctID:
				results[position] = models.StatusCorrect
			case ok && memberOf(targetIDs, placed):
				results[position] = models.StatusMisplaced
			default:
				results[position] = models.StatusIncorrect
			}
		}
	}
	return results
}

func memberOf(set map[int]struct{}, id int) bool {
	_, ok := set[id]
	return ok
}

func (e *LineupEngine) formationLine(label string) *models.FormationLine {
	for i := range e.formation.Structure {
		if e.formation.Structure[i].Line == label {
			return &e.formation.Structure[i]
		}
	}
	return nil
}

func (e *LineupEngine) allCorrect() bool {
	if len(e.verdicts) != e.SlotCount() {
		return false
	}
	for _, status := range e.verdicts {
		if status != models.StatusCorrect {
			return false
		}
	}
	return true
}

// Hints describes the unlocked tiers. Tier values live per slot, see
// SlotHints.
func (e *LineupEngine) Hints() models.HintState {
	out := make(models.HintState, len(lineupHintTiers))
	for _, tier := range lineupHintTiers {
		out[tier.name] = &models.HintStatus{
			VisibleAt: tier.unlockAt,
			UnlockAt:  tier.unlockAt,
			Visible:   e.attempts >= tier.unlockAt,
			Unlocked:  e.attempts >= tier.unlockAt,
		}
	}
	return out
}

// SlotHints returns, for every slot not yet correct, the unlocked
// attribute hints about the player who belongs there.
func (e *LineupEngine) SlotHints() map[string]map[string]string {
	if e.attempts == 0 || e.phase == models.PhaseWon {
		return nil
	}

	out := make(map[string]map[string]string)
	for label, correctIDs := range e.match.Lineup {
		line := e.formationLine(label)
		if line == nil {
			continue
		}
		for i, correctID := range correctIDs {
			position := line.Positions[i]
			if e.verdicts[position] == models.StatusCorrect {
				continue
			}
			target, ok := e.players.PlayerByID(correctID)
			if !ok {
				continue
			}
			hints := make(map[string]string)
			if e.attempts >= 1 {
				hints[LineupHintHeight] = fmt.Sprintf("%d cm", target.Height)
			}
			if e.attempts >= 2 {
				hints[LineupHintNumber] = "#" + strconv.Itoa(target.Number)
			}
			if e.attempts >= 3 {
				hints[LineupHintNationality] = target.Nationality
			}
			out[position] = hints
		}
	}
	return out
}

func (e *LineupEngine) Session() *models.Session {
	sess := &models.Session{
		DateSeed:           e.seed,
		Mode:               ModeLineup,
		TargetID:           e.match.ID,
		Placements:         e.Placements(),
		ValidationAttempts: e.attempts,
		StatsRecorded:      e.statsRecorded,
	}
	if e.validated != nil {
		sess.Validated = make(map[string]int, len(e.validated))
		for slot, id := range e.validated {
			sess.Validated[slot] = id
		}
	}
	return sess
}

// Restore rebuilds state from stored placements and re-runs the last
// validation on its stored snapshot instead of trusting a stored
// outcome flag: phase, slot verdicts and hint tiers all re-derive from
// the same evaluation that produced them. Current placements are never
// judged here, only the snapshot the player actually validated.
func (e *LineupEngine) Restore(sess *models.Session) bool {
	if sess.Mode != ModeLineup || sess.DateSeed != e.seed || sess.TargetID != e.match.ID {
		return false
	}

	for position, id := range sess.Placements {
		if !e.hasSlot(position) {
			continue
		}
		if _, taken := e.used[id]; taken {
			continue
		}
		e.placements[position] = id
		e.used[id] = struct{}{}
	}
	if len(e.placements) > 0 {
		e.phase = models.PhaseInProgress
	}

	e.attempts = sess.ValidationAttempts
	if e.attempts > 0 && len(sess.Validated) > 0 {
		e.validated = make(map[string]int, len(sess.Validated))
		for slot, id := range sess.Validated {
			e.validated[slot] = id
		}
		e.verdicts = e.evaluate(e.validated)
		if e.allCorrect() {
			e.phase = models.PhaseWon
		}
	}
	e.statsRecorded = sess.StatsRecorded
	return true
}
