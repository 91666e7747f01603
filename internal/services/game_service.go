package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"

	"psgdle/internal/game"
	"psgdle/internal/models"
	"psgdle/internal/providers"
	"psgdle/internal/storage"
)

var (
	// ErrDatasetUnavailable gates all gameplay: the startup fetch
	// failed or resolved empty, and this process stays unplayable.
	ErrDatasetUnavailable = errors.New("dataset unavailable, gameplay disabled")
	ErrUnknownMode        = errors.New("unknown game mode")
	// ErrWrongVariant marks an operation submitted to a variant that
	// does not support it, e.g. a lineup placement in classic mode.
	ErrWrongVariant = errors.New("operation not supported by this game variant")
)

type GameServiceInterface interface {
	Ready() bool
	Players() []models.PlayerSummary
	StateFor(fingerprint, mode string) (*StateView, error)
	SubmitGuess(fingerprint, mode string, playerID int) (*StateView, error)
	ToggleHint(fingerprint, mode, hint string) (*StateView, error)
	PlaceLineup(fingerprint, position string, playerID int) (*StateView, error)
	ClearLineup(fingerprint, position string) (*StateView, error)
	ValidateLineup(fingerprint string) (*StateView, error)
	Stats(fingerprint, mode string) (*StatsView, error)
	ResetSession(fingerprint, mode string) error
	ResetStats(fingerprint, mode string) error
	Surprise(mode string) (*SurpriseView, error)
}

// DataSource is the read side of the loaded dataset: the engines' two
// source interfaces plus the readiness gate.
type DataSource interface {
	game.PlayerSource
	game.MatchSource
	Ready() bool
}

// GameService rebuilds the day's engine from persisted state on every
// request, applies one operation, and writes the session back. Stats
// recording shares the same critical section as the terminal-phase
// transition, so a completed game is counted exactly once even across
// reloads.
type GameService struct {
	mu      sync.Mutex
	ds      DataSource
	store   storage.StoreInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	ready   *atomic.Bool
	now     func() time.Time
}

func NewGameService(ds DataSource, store storage.StoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) GameServiceInterface {
	return &GameService{
		ds:      ds,
		store:   store,
		logger:  logger,
		metrics: metrics,
		ready:   atomic.NewBool(ds.Ready()),
		now:     time.Now,
	}
}

func (s *GameService) Ready() bool {
	return s.ready.Load()
}

func (s *GameService) Players() []models.PlayerSummary {
	players := s.ds.Players()
	out := make([]models.PlayerSummary, 0, len(players))
	for i := range players {
		out = append(out, players[i].Summary())
	}
	return out
}

func sessionKey(mode, fingerprint string) string {
	return "session:" + mode + ":" + fingerprint
}

func statsKey(mode, fingerprint string) string {
	return "stats:" + mode + ":" + fingerprint
}

func (s *GameService) newEngine(mode string) (game.Engine, error) {
	seed := game.DateSeed(s.now())
	switch mode {
	case game.ModeClassic:
		return game.NewClassicEngine(s.ds, seed)
	case game.ModePhoto:
		return game.NewPhotoEngine(s.ds, seed)
	case game.ModeLineup:
		return game.NewLineupEngine(s.ds, s.ds, seed)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// restoredEngine builds today's engine and replays the stored session
// into it. A stale, mismatched or unreadable session is deleted and the
// day starts clean; stored damage never surfaces as an error.
func (s *GameService) restoredEngine(fingerprint, mode string) (game.Engine, error) {
	if !s.ready.Load() {
		return nil, ErrDatasetUnavailable
	}

	eng, err := s.newEngine(mode)
	if err != nil {
		if errors.Is(err, game.ErrEmptyDataset) {
			return nil, ErrDatasetUnavailable
		}
		return nil, err
	}

	key := sessionKey(mode, fingerprint)
	raw, ok := s.store.Get(key)
	if !ok {
		return eng, nil
	}

	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.logger.Warnf(providers.TypeApp, "Corrupt session for %s, starting fresh", key)
		s.store.Delete(key)
		return eng, nil
	}
	if !eng.Restore(&sess) {
		s.store.Delete(key)
		return eng, nil
	}
	return eng, nil
}

func (s *GameService) saveSession(fingerprint string, eng game.Engine) {
	raw, err := json.Marshal(eng.Session())
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Cannot serialize session: %s", err)
		return
	}
	s.store.Put(sessionKey(eng.Mode(), fingerprint), raw)
}

// finishGame records lifetime stats when the session just reached a
// terminal phase. The StatsRecorded flag rides inside the session blob,
// so the fold happens at most once per completed game.
func (s *GameService) finishGame(fingerprint string, eng game.Engine) {
	if !eng.Phase().Terminal() || eng.StatsRecorded() {
		return
	}

	stats := s.loadStats(fingerprint, eng.Mode())
	won := eng.Phase() == models.PhaseWon
	stats.RecordGame(eng.Attempts(), won, s.now())
	s.putStats(fingerprint, eng.Mode(), stats)
	eng.MarkStatsRecorded()

	outcome := "lost"
	if won {
		outcome = "won"
	}
	s.metrics.IncGamesCompleted(eng.Mode(), outcome)
	s.logger.Infof(providers.TypeApp, "Game finished: mode=%s outcome=%s attempts=%d", eng.Mode(), outcome, eng.Attempts())
}

func (s *GameService) loadStats(fingerprint, mode string) *models.LifetimeStats {
	raw, ok := s.store.Get(statsKey(mode, fingerprint))
	if !ok {
		return models.NewLifetimeStats()
	}
	var stats models.LifetimeStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		s.logger.Warnf(providers.TypeApp, "Corrupt stats for %s/%s, starting fresh", mode, fingerprint)
		return models.NewLifetimeStats()
	}
	if stats.Histogram == nil {
		stats.Histogram = make(map[int]int)
	}
	return &stats
}

func (s *GameService) putStats(fingerprint, mode string, stats *models.LifetimeStats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Cannot serialize stats: %s", err)
		return
	}
	s.store.Put(statsKey(mode, fingerprint), raw)
}

func (s *GameService) StateFor(fingerprint, mode string) (*StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	eng, err := s.restoredEngine(fingerprint, mode)
	if err != nil {
		return nil, err
	}
	return s.view(eng), nil
}

func (s *GameService) SubmitGuess(fingerprint, mode string, playerID int) (*StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	eng, err := s.restoredEngine(fingerprint, mode)
	if err != nil {
		return nil, err
	}
	ge, ok := eng.(game.GuessEngine)
	if !ok {
		return nil, ErrWrongVariant
	}

	if ge.SubmitGuess(playerID) {
		result := "miss"
		if ge.Phase() == models.PhaseWon {
			result = "win"
		}
		s.metrics.IncGuessesTotal(mode, result)
		s.finishGame(fingerprint, eng)
		s.saveSession(fingerprint, eng)
	} else {
		s.metrics.IncGuessesTotal(mode, "rejected")
	}
	return s.view(eng), nil
}

func (s *GameService) ToggleHint(fingerprint, mode, hint string) (*StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	eng, err := s.restoredEngine(fingerprint, mode)
	if err != nil {
		return nil, err
	}
	ce, ok := eng.(*game.ClassicEngine)
	if !ok {
		return nil, ErrWrongVariant
	}

	if ce.ToggleHint(hint) {
		s.saveSession(fingerprint, eng)
	}
	return s.view(eng), nil
}

func (s *GameService) PlaceLineup(fingerprint, position string, playerID int) (*StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	eng, err := s.restoredEngine(fingerprint, game.ModeLineup)
	if err != nil {
		return nil, err
	}
	le := eng.(*game.LineupEngine)

	if le.Place(position, playerID) {
		s.saveSession(fingerprint, eng)
	}
	return s.view(eng), nil
}

func (s *GameService) ClearLineup(fingerprint, position string) (*StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	eng, err := s.restoredEngine(fingerprint, game.ModeLineup)
	if err != nil {
		return nil, err
	}
	le := eng.(*game.LineupEngine)

	if le.Clear(position) {
		s.saveSession(fingerprint, eng)
	}
	return s.view(eng), nil
}

func (s *GameService) ValidateLineup(fingerprint string) (*StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	eng, err := s.restoredEngine(fingerprint, game.ModeLineup)
	if err != nil {
		return nil, err
	}
	le := eng.(*game.LineupEngine)

	if le.Validate() {
		result := "miss"
		if le.Phase() == models.PhaseWon {
			result = "win"
		}
		s.metrics.IncGuessesTotal(game.ModeLineup, result)
		s.finishGame(fingerprint, eng)
		s.saveSession(fingerprint, eng)
	} else {
		s.metrics.IncGuessesTotal(game.ModeLineup, "rejected")
	}
	return s.view(eng), nil
}

func (s *GameService) Stats(fingerprint, mode string) (*StatsView, error) {
	if !isKnownMode(mode) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stats := s.loadStats(fingerprint, mode)
	return &StatsView{
		LifetimeStats:   *stats,
		WinRate:         stats.WinRate(),
		AverageAttempts: stats.AverageAttempts(),
	}, nil
}

func (s *GameService) ResetSession(fingerprint, mode string) error {
	if !isKnownMode(mode) {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Delete(sessionKey(mode, fingerprint))
	return nil
}

func (s *GameService) ResetStats(fingerprint, mode string) error {
	if !isKnownMode(mode) {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Delete(statsKey(mode, fingerprint))
	return nil
}

// Surprise draws a uniformly random target for the given mode. Manual
// regeneration only — never consulted for the daily target.
func (s *GameService) Surprise(mode string) (*SurpriseView, error) {
	if !s.ready.Load() {
		return nil, ErrDatasetUnavailable
	}

	switch mode {
	case game.ModeClassic:
		p, err := game.SelectSurprise(s.ds.Players())
		if err != nil {
			return nil, ErrDatasetUnavailable
		}
		return &SurpriseView{Mode: mode, TargetID: p.ID, Label: p.Name}, nil
	case game.ModePhoto:
		p, err := game.SelectSurprise(s.ds.PhotoPool())
		if err != nil {
			return nil, ErrDatasetUnavailable
		}
		return &SurpriseView{Mode: mode, TargetID: p.ID, Label: p.Name}, nil
	case game.ModeLineup:
		m, err := game.SelectSurprise(s.ds.Matches())
		if err != nil {
			return nil, ErrDatasetUnavailable
		}
		return &SurpriseView{Mode: mode, TargetID: m.ID, Label: m.Opponent}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

func isKnownMode(mode string) bool {
	switch mode {
	case game.ModeClassic, game.ModePhoto, game.ModeLineup:
		return true
	}
	return false
}
