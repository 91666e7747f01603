package game

import "psgdle/internal/models"

// Evaluate compares a guessed player against the daily target, one
// verdict per tracked attribute. Pure: identical inputs always produce
// identical output, which restore-by-replay depends on.
func Evaluate(candidate, target *models.Player) *models.Verdict {
	return &models.Verdict{
		Nationality:   categorical(candidate.Nationality == target.Nationality),
		Age:           ordinal(candidate.Age, target.Age),
		Position:      categorical(candidate.Position == target.Position),
		Number:        ordinal(candidate.Number, target.Number),
		Height:        ordinal(candidate.Height, target.Height),
		TrainedAtClub: categorical(candidate.TrainedAtClub == target.TrainedAtClub),
		Matches:       ordinal(candidate.Matches, target.Matches),
		IsTarget:      candidate.ID == target.ID,
	}
}

func categorical(equal bool) string {
	if equal {
		return models.StatusCorrect
	}
	return models.StatusIncorrect
}

// ordinal compares numeric attributes. Direction "up" tells the player
// to guess higher, "down" to guess lower.
func ordinal(candidate, target int) models.AttributeVerdict {
	v := models.AttributeVerdict{Status: models.StatusIncorrect}
	switch {
	case candidate == target:
		v.Status = models.StatusCorrect
		v.Direction = models.DirectionNone
	case candidate < target:
		v.Direction = models.DirectionUp
	default:
		v.Direction = models.DirectionDown
	}
	return v
}
