package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psgdle/internal/models"
	"psgdle/internal/testutil"
)

func newPhoto(t *testing.T, n int) *PhotoEngine {
	t.Helper()
	e, err := NewPhotoEngine(testutil.NewRoster(testutil.SomePlayers(n)...), testSeed)
	require.NoError(t, err)
	return e
}

func photoWrongID(e *PhotoEngine, offset int) int {
	id := e.Target().ID + offset
	if id > len(e.src.PhotoPool()) {
		id = id - len(e.src.PhotoPool())
	}
	return id
}

func TestPhotoEngine_SeedOffsetDivergesFromClassic(t *testing.T) {
	roster := testutil.NewRoster(testutil.SomePlayers(40)...)
	classic, err := NewClassicEngine(roster, testSeed)
	require.NoError(t, err)
	photo, err := NewPhotoEngine(roster, testSeed)
	require.NoError(t, err)

	assert.NotEqual(t, classic.Target().ID, photo.Target().ID)
}

func TestPhotoEngine_TargetAlwaysHasPhoto(t *testing.T) {
	players := testutil.SomePlayers(20)
	for i := range players {
		if i%2 == 0 {
			players[i].Photo = ""
		}
	}

	e, err := NewPhotoEngine(testutil.NewRoster(players...), testSeed)
	require.NoError(t, err)
	assert.NotEmpty(t, e.Target().Photo)
}

func TestPhotoEngine_EmptyPool(t *testing.T) {
	players := testutil.SomePlayers(5)
	for i := range players {
		players[i].Photo = ""
	}

	_, err := NewPhotoEngine(testutil.NewRoster(players...), testSeed)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestPhotoEngine_BlurLevelFollowsAttempts(t *testing.T) {
	e := newPhoto(t, 20)
	assert.Equal(t, 1, e.BlurLevel())

	e.SubmitGuess(photoWrongID(e, 1))
	assert.Equal(t, 2, e.BlurLevel())

	e.SubmitGuess(photoWrongID(e, 2))
	e.SubmitGuess(photoWrongID(e, 3))
	e.SubmitGuess(photoWrongID(e, 4))
	assert.Equal(t, 5, e.BlurLevel())

	e.SubmitGuess(photoWrongID(e, 5))
	// Level caps at the attempt budget.
	assert.Equal(t, models.PhaseInProgress, e.Phase())
	assert.Equal(t, PhotoMaxAttempts, e.BlurLevel())
}

func TestPhotoEngine_SixMissesLose(t *testing.T) {
	e := newPhoto(t, 20)

	for i := 1; i <= PhotoMaxAttempts; i++ {
		require.True(t, e.SubmitGuess(photoWrongID(e, i)))
	}
	assert.Equal(t, models.PhaseLost, e.Phase())

	// The seventh guess is a no-op.
	assert.False(t, e.SubmitGuess(photoWrongID(e, 7)))
	assert.Equal(t, PhotoMaxAttempts, e.Attempts())
}

func TestPhotoEngine_WinOnLastAttempt(t *testing.T) {
	e := newPhoto(t, 20)

	for i := 1; i < PhotoMaxAttempts; i++ {
		e.SubmitGuess(photoWrongID(e, i))
	}
	require.True(t, e.SubmitGuess(e.Target().ID))
	assert.Equal(t, models.PhaseWon, e.Phase())
	assert.Zero(t, e.BlurLevel())
}

func TestPhotoEngine_DuplicateGuessIsNoOp(t *testing.T) {
	e := newPhoto(t, 20)
	id := photoWrongID(e, 1)

	assert.True(t, e.SubmitGuess(id))
	assert.False(t, e.SubmitGuess(id))
	assert.Equal(t, 1, e.Attempts())
}

func TestPhotoEngine_SessionRoundTrip(t *testing.T) {
	e := newPhoto(t, 20)
	for i := 1; i <= 3; i++ {
		e.SubmitGuess(photoWrongID(e, i))
	}
	sess := e.Session()

	restored := newPhoto(t, 20)
	require.True(t, restored.Restore(sess))

	assert.Equal(t, models.PhaseInProgress, restored.Phase())
	assert.Equal(t, 3, restored.Attempts())
	assert.Equal(t, e.BlurLevel(), restored.BlurLevel())
	assert.Equal(t, e.Guesses(), restored.Guesses())
}

func TestPhotoEngine_RestoreReplaysLoss(t *testing.T) {
	e := newPhoto(t, 20)
	for i := 1; i <= PhotoMaxAttempts; i++ {
		e.SubmitGuess(photoWrongID(e, i))
	}
	e.MarkStatsRecorded()

	restored := newPhoto(t, 20)
	require.True(t, restored.Restore(e.Session()))
	assert.Equal(t, models.PhaseLost, restored.Phase())
	assert.True(t, restored.StatsRecorded())
}

func TestPhotoEngine_RestoreRejectsOtherDay(t *testing.T) {
	e := newPhoto(t, 20)
	sess := e.Session()
	sess.DateSeed = testSeed + 1

	assert.False(t, newPhoto(t, 20).Restore(sess))
}
