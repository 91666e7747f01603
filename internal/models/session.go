package models

// Phase is the lifecycle state of one daily game.
type Phase string

const (
	PhaseNotStarted Phase = "notStarted"
	PhaseInProgress Phase = "inProgress"
	PhaseWon        Phase = "won"
	PhaseLost       Phase = "lost"
)

// Terminal reports whether the phase accepts no further guesses.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

const (
	StatusCorrect   = "correct"
	StatusIncorrect = "incorrect"
	StatusMisplaced = "misplaced"

	DirectionUp   = "up"
	DirectionDown = "down"
	DirectionNone = ""
)

// AttributeVerdict is the comparison result for one ordinal attribute.
// Direction guides the player: "up" means the target value is higher
// than the guessed one.
type AttributeVerdict struct {
	Status    string `json:"status"`
	Direction string `json:"direction,omitempty"`
}

// Verdict is the full per-attribute comparison of a guessed player
// against the daily target.
type Verdict struct {
	Nationality   string           `json:"nationality"`
	Age           AttributeVerdict `json:"age"`
	Position      string           `json:"position"`
	Number        AttributeVerdict `json:"number"`
	Height        AttributeVerdict `json:"height"`
	TrainedAtClub string           `json:"trainedAtClub"`
	Matches       AttributeVerdict `json:"matches"`
	IsTarget      bool             `json:"isTarget"`
}

// GuessRecord is one submitted guess, append-only and ordered by
// submission time.
type GuessRecord struct {
	PlayerID      int      `json:"playerId"`
	PlayerName    string   `json:"playerName"`
	AttemptNumber int      `json:"attemptNumber"`
	Correct       bool     `json:"correct"`
	Verdict       *Verdict `json:"verdict,omitempty"`
}

// HintStatus tracks one hint tier. Visible and Unlocked are monotonic
// functions of the attempt count; Revealed is the user toggle.
type HintStatus struct {
	VisibleAt int    `json:"visibleAt"`
	UnlockAt  int    `json:"unlockAt"`
	Visible   bool   `json:"visible"`
	Unlocked  bool   `json:"unlocked"`
	Revealed  bool   `json:"revealed"`
	Value     string `json:"value,omitempty"`
}

type HintState map[string]*HintStatus

// Session is the persisted state of one day's game for one client.
// Only replay inputs are stored: phase, verdicts and hint unlocks are
// re-derived on restore by replaying GuessIDs, or for the lineup
// variant the last validated placement snapshot, through the evaluator.
type Session struct {
	DateSeed           int            `json:"dateSeed"`
	Mode               string         `json:"mode"`
	TargetID           int            `json:"targetId"`
	GuessIDs           []int          `json:"guessIds,omitempty"`
	Placements         map[string]int `json:"placements,omitempty"`
	Validated          map[string]int `json:"validated,omitempty"`
	ValidationAttempts int            `json:"validationAttempts,omitempty"`
	Revealed           []string       `json:"revealed,omitempty"`
	StatsRecorded      bool           `json:"statsRecorded"`
}
