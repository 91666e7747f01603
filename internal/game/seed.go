// Package game implements the deterministic daily session engine: seeded
// target selection, guess evaluation, hint progression and the per-variant
// state machines.
package game

import (
	"errors"
	"math/rand"
	"time"
)

const (
	ModeClassic = "classic"
	ModePhoto   = "photo"
	ModeLineup  = "lineup"
)

// PhotoSeedOffset shifts the photo variant's seed so the two player-
// guessing variants never share a daily target.
const PhotoSeedOffset = 1234

var ErrEmptyDataset = errors.New("no entities to select a daily target from")

// DateSeed derives the daily seed from a calendar date: year*10000 +
// month*100 + day. Monotonically increasing per day; uniqueness is all
// that matters, not calendar arithmetic.
func DateSeed(t time.Time) int {
	year, month, day := t.Date()
	return year*10000 + int(month)*100 + day
}

// seededUnit maps an integer seed to a reproducible value in [0,1).
// splitmix64 finalizer: deterministic across platforms, unlike the
// transcendental-based generators some ports rely on.
func seededUnit(seed int) float64 {
	x := uint64(seed) + 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	x ^= x >> 31
	return float64(x>>11) / float64(uint64(1)<<53)
}

// DailyIndex picks the day's index into a dataset of n entities.
func DailyIndex(seed, n int) int {
	return int(seededUnit(seed) * float64(n))
}

// SelectDaily returns today's target for the given seed. Deterministic:
// the same seed and dataset ordering always yield the same entity.
func SelectDaily[E any](entities []E, seed int) (*E, error) {
	if len(entities) == 0 {
		return nil, ErrEmptyDataset
	}
	return &entities[DailyIndex(seed, len(entities))], nil
}

// SelectSurprise draws a uniformly random entity for manual regeneration.
// Never used for the canonical daily target.
func SelectSurprise[E any](entities []E) (*E, error) {
	if len(entities) == 0 {
		return nil, ErrEmptyDataset
	}
	return &entities[rand.Intn(len(entities))], nil
}

// NextGameIn is the time remaining until the next daily target, i.e.
// until local midnight. Display-only data.
func NextGameIn(now time.Time) time.Duration {
	year, month, day := now.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return midnight.Sub(now)
}
