package models

import "time"

// HistogramCap is the last exact bucket of the attempts histogram;
// wins needing more attempts land in the Overflow bucket.
const HistogramCap = 10

const statsDateLayout = "2006-01-02"

// LifetimeStats accumulates cross-session outcomes for one client and
// one game variant. Mutated exactly once per completed game.
type LifetimeStats struct {
	GamesPlayed    int         `json:"gamesPlayed"`
	GamesWon       int         `json:"gamesWon"`
	CurrentStreak  int         `json:"currentStreak"`
	MaxStreak      int         `json:"maxStreak"`
	Histogram      map[int]int `json:"histogram"`
	Overflow       int         `json:"overflow"`
	AllAttempts    []int       `json:"allAttempts"`
	BestScore      int         `json:"bestScore,omitempty"`
	LastPlayedDate string      `json:"lastPlayedDate,omitempty"`
}

func NewLifetimeStats() *LifetimeStats {
	return &LifetimeStats{
		Histogram: make(map[int]int),
	}
}

// RecordGame folds one completed game into the stats. A loss resets the
// streak but still counts the day as played.
func (s *LifetimeStats) RecordGame(attempts int, won bool, completion time.Time) {
	s.GamesPlayed++

	if won {
		s.GamesWon++
		s.AllAttempts = append(s.AllAttempts, attempts)

		if attempts <= HistogramCap {
			if s.Histogram == nil {
				s.Histogram = make(map[int]int)
			}
			s.Histogram[attempts]++
		} else {
			s.Overflow++
		}

		if s.BestScore == 0 || attempts < s.BestScore {
			s.BestScore = attempts
		}

		switch days := s.daysSinceLastPlayed(completion); {
		case days < 0:
			s.CurrentStreak = 1
		case days == 1:
			s.CurrentStreak++
		case days > 1:
			s.CurrentStreak = 1
		}
		if s.CurrentStreak > s.MaxStreak {
			s.MaxStreak = s.CurrentStreak
		}
	} else {
		s.CurrentStreak = 0
	}

	s.LastPlayedDate = completion.Format(statsDateLayout)
}

// daysSinceLastPlayed returns the calendar-day gap to the previous
// recorded game, or -1 when none exists or the stored date is unreadable.
func (s *LifetimeStats) daysSinceLastPlayed(completion time.Time) int {
	if s.LastPlayedDate == "" {
		return -1
	}
	last, err := time.Parse(statsDateLayout, s.LastPlayedDate)
	if err != nil {
		return -1
	}
	today, err := time.Parse(statsDateLayout, completion.Format(statsDateLayout))
	if err != nil {
		return -1
	}
	return int(today.Sub(last).Hours() / 24)
}

// WinRate is the share of won games in percent, rounded down.
func (s *LifetimeStats) WinRate() int {
	if s.GamesPlayed == 0 {
		return 0
	}
	return s.GamesWon * 100 / s.GamesPlayed
}

// AverageAttempts is the arithmetic mean over the exact per-win attempt
// list. Legacy blobs without the list fall back to a histogram
// approximation, counting every overflow win as HistogramCap+1.
func (s *LifetimeStats) AverageAttempts() float64 {
	if len(s.AllAttempts) > 0 {
		sum := 0
		for _, a := range s.AllAttempts {
			sum += a
		}
		return float64(sum) / float64(len(s.AllAttempts))
	}

	total := 0
	wins := 0
	for attempts, count := range s.Histogram {
		total += attempts * count
		wins += count
	}
	total += (HistogramCap + 1) * s.Overflow
	wins += s.Overflow

	if wins == 0 {
		return 0
	}
	return float64(total) / float64(wins)
}
