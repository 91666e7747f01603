package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psgdle/internal/game"
	"psgdle/internal/models"
	"psgdle/internal/providers"
	"psgdle/internal/services"
)

// --- local mocks (scoped to controller tests) ---

type mockLogger struct{}

func (m *mockLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Close()                                                  {}

type serviceCall struct {
	op          string
	fingerprint string
	mode        string
	playerID    int
	position    string
	hint        string
}

type mockService struct {
	calls    []serviceCall
	view     *services.StateView
	stats    *services.StatsView
	surprise *services.SurpriseView
	players  []models.PlayerSummary
	ready    bool
	nextErr  error
}

func (m *mockService) Ready() bool                     { return m.ready }
func (m *mockService) Players() []models.PlayerSummary { return m.players }

func (m *mockService) StateFor(fp, mode string) (*services.StateView, error) {
	m.calls = append(m.calls, serviceCall{op: "state", fingerprint: fp, mode: mode})
	return m.view, m.nextErr
}

func (m *mockService) SubmitGuess(fp, mode string, playerID int) (*services.StateView, error) {
	m.calls = append(m.calls, serviceCall{op: "guess", fingerprint: fp, mode: mode, playerID: playerID})
	return m.view, m.nextErr
}

func (m *mockService) ToggleHint(fp, mode, hint string) (*services.StateView, error) {
	m.calls = append(m.calls, serviceCall{op: "hint", fingerprint: fp, mode: mode, hint: hint})
	return m.view, m.nextErr
}

func (m *mockService) PlaceLineup(fp, position string, playerID int) (*services.StateView, error) {
	m.calls = append(m.calls, serviceCall{op: "place", fingerprint: fp, position: position, playerID: playerID})
	return m.view, m.nextErr
}

func (m *mockService) ClearLineup(fp, position string) (*services.StateView, error) {
	m.calls = append(m.calls, serviceCall{op: "clear", fingerprint: fp, position: position})
	return m.view, m.nextErr
}

func (m *mockService) ValidateLineup(fp string) (*services.StateView, error) {
	m.calls = append(m.calls, serviceCall{op: "validate", fingerprint: fp})
	return m.view, m.nextErr
}

func (m *mockService) Stats(fp, mode string) (*services.StatsView, error) {
	m.calls = append(m.calls, serviceCall{op: "stats", fingerprint: fp, mode: mode})
	return m.stats, m.nextErr
}

func (m *mockService) ResetSession(fp, mode string) error {
	m.calls = append(m.calls, serviceCall{op: "resetSession", fingerprint: fp, mode: mode})
	return m.nextErr
}

func (m *mockService) ResetStats(fp, mode string) error {
	m.calls = append(m.calls, serviceCall{op: "resetStats", fingerprint: fp, mode: mode})
	return m.nextErr
}

func (m *mockService) Surprise(mode string) (*services.SurpriseView, error) {
	m.calls = append(m.calls, serviceCall{op: "surprise", mode: mode})
	return m.surprise, m.nextErr
}

type mockCache struct {
	data map[string][]byte
}

func newMockCache() *mockCache                     { return &mockCache{data: make(map[string][]byte)} }
func (m *mockCache) Get(key string) ([]byte, bool) { v, ok := m.data[key]; return v, ok }
func (m *mockCache) Set(key string, value []byte)  { m.data[key] = value }

// --- helpers ---

func newTestController(svc *mockService, cache *mockCache) *ApiController {
	return NewApiController(&mockLogger{}, svc, cache)
}

func playingService() *mockService {
	return &mockService{
		ready: true,
		view:  &services.StateView{Mode: game.ModeClassic, Phase: models.PhaseInProgress, Attempts: 1},
	}
}

// --- CreateProfile tests ---

func TestCreateProfile_MintsFingerprint(t *testing.T) {
	ac := newTestController(playingService(), newMockCache())

	req := httptest.NewRequest(http.MethodPost, "/profile", nil)
	rr := httptest.NewRecorder()

	ac.CreateProfile(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var result map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Len(t, result["fingerprint"], 36)
}

func TestCreateProfile_FingerprintsAreUnique(t *testing.T) {
	ac := newTestController(playingService(), newMockCache())

	mint := func() string {
		rr := httptest.NewRecorder()
		ac.CreateProfile(rr, httptest.NewRequest(http.MethodPost, "/profile", nil))
		var result map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		return result["fingerprint"]
	}
	assert.NotEqual(t, mint(), mint())
}

// --- GetState tests ---

func TestGetState_PassesFingerprintAndMode(t *testing.T) {
	svc := playingService()
	ac := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodGet, "/state?f=fp1&mode=photo", nil)
	rr := httptest.NewRecorder()

	ac.GetState(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, svc.calls, 1)
	assert.Equal(t, "fp1", svc.calls[0].fingerprint)
	assert.Equal(t, "photo", svc.calls[0].mode)
}

func TestGetState_DefaultsToClassic(t *testing.T) {
	svc := playingService()
	ac := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodGet, "/state?f=fp1", nil)
	rr := httptest.NewRecorder()

	ac.GetState(rr, req)

	require.Len(t, svc.calls, 1)
	assert.Equal(t, game.ModeClassic, svc.calls[0].mode)
}

func TestGetState_DatasetUnavailable(t *testing.T) {
	svc := playingService()
	svc.nextErr = services.ErrDatasetUnavailable
	ac := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodGet, "/state?f=fp1", nil)
	rr := httptest.NewRecorder()

	ac.GetState(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

// --- SubmitGuess tests ---

func TestSubmitGuess_ValidPayload(t *testing.T) {
	svc := playingService()
	ac := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodPost, "/guess?f=fp1", strings.NewReader(`{"playerId":7}`))
	rr := httptest.NewRecorder()

	ac.SubmitGuess(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, svc.calls, 1)
	assert.Equal(t, 7, svc.calls[0].playerID)
}

func TestSubmitGuess_StringIDIsCoerced(t *testing.T) {
	svc := playingService()
	ac := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodPost, "/guess?f=fp1", strings.NewReader(`{"playerId":"7"}`))
	rr := httptest.NewRecorder()

	ac.SubmitGuess(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, svc.calls, 1)
	assert.Equal(t, 7, svc.calls[0].playerID)
}

func TestSubmitGuess_InvalidJSON(t *testing.T) {
	svc := playingService()
	ac := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodPost, "/guess?f=fp1", strings.NewReader("not json"))
	rr := httptest.NewRecorder()

	ac.SubmitGuess(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, svc.calls)
}

func TestSubmitGuess_OversizedBody(t *testing.T) {
	svc := playingService()
	ac := newTestController(svc, newMockCache())

	big := strings.Repeat("x", maxRequestBodySize+1)
	req := httptest.NewRequest(http.MethodPost, "/guess?f=fp1", strings.NewReader(big))
	rr := httptest.NewRecorder()

	ac.SubmitGuess(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmitGuess_WrongVariant(t *testing.T) {
	svc := playingService()
	svc.nextErr = services.ErrWrongVariant
	ac := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodPost, "/guess?f=fp1&mode=lineup", strings.NewReader(`{"playerId":7}`))
	rr := httptest.NewRecorder()

	ac.SubmitGuess(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// --- Hint tests ---

func TestToggleHint_PassesHintName(t *testing.T) {
	svc := playingService()
	ac := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodPost, "/hint?f=fp1", strings.NewReader(`{"hint":"transferFee"}`))
	rr := httptest.NewRecorder()

	ac.ToggleHint(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, svc.calls, 1)
	assert.Equal(t, "transferFee", svc.calls[0].hint)
}

// --- Lineup tests ---

func TestPlaceLineup_ValidPayload(t *testing.T) {
	svc := playingService()
	ac := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodPost, "/lineup/place?f=fp1", strings.NewReader(`{"position":"GK1","playerId":"3"}`))
	rr := httptest.NewRecorder()

	ac.PlaceLineup(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, svc.calls, 1)
	assert.Equal(t, "GK1", svc.calls[0].position)
	assert.Equal(t, 3, svc.calls[0].playerID)
}

func TestClearLineup_ValidPayload(t *testing.T) {
	svc := playingService()
	ac := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodPost, "/lineup/clear?f=fp1", strings.NewReader(`{"position":"DEF2"}`))
	rr := httptest.NewRecorder()

	ac.ClearLineup(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, svc.calls, 1)
	assert.Equal(t, "DEF2", svc.calls[0].position)
}

func TestValidateLineup_NoBodyNeeded(t *testing.T) {
	svc := playingService()
	ac := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodPost, "/lineup/validate?f=fp1", nil)
	rr := httptest.NewRecorder()

	ac.ValidateLineup(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, svc.calls, 1)
	assert.Equal(t, "validate", svc.calls[0].op)
	assert.Equal(t, "fp1", svc.calls[0].fingerprint)
}

// --- Stats and reset tests ---

func TestGetStatistics_ReturnsJSON(t *testing.T) {
	svc := playingService()
	svc.stats = &services.StatsView{WinRate: 50}
	ac := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodGet, "/stats?f=fp1&mode=photo", nil)
	rr := httptest.NewRecorder()

	ac.GetStatistics(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var result map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, float64(50), result["winRate"])
}

func TestResetSession_NoContent(t *testing.T) {
	svc := playingService()
	ac := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodPost, "/reset?f=fp1&mode=lineup", nil)
	rr := httptest.NewRecorder()

	ac.ResetSession(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	require.Len(t, svc.calls, 1)
	assert.Equal(t, "resetSession", svc.calls[0].op)
	assert.Equal(t, "lineup", svc.calls[0].mode)
}

func TestResetStatistics_UnknownMode(t *testing.T) {
	svc := playingService()
	svc.nextErr = services.ErrUnknownMode
	ac := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodPost, "/stats/reset?f=fp1&mode=sudoku", nil)
	rr := httptest.NewRecorder()

	ac.ResetStatistics(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// --- Surprise tests ---

func TestGetSurprise_ReturnsTarget(t *testing.T) {
	svc := playingService()
	svc.surprise = &services.SurpriseView{Mode: game.ModeClassic, TargetID: 4, Label: "Player 4"}
	ac := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodGet, "/surprise", nil)
	rr := httptest.NewRecorder()

	ac.GetSurprise(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var result services.SurpriseView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, 4, result.TargetID)
}

// --- Cache behavior tests ---

func TestGetPlayers_CacheMissSavesResult(t *testing.T) {
	cache := newMockCache()
	svc := playingService()
	svc.players = []models.PlayerSummary{{ID: 1, Name: "Player 1"}}
	ac := newTestController(svc, cache)

	req := httptest.NewRequest(http.MethodGet, "/players", nil)
	rr := httptest.NewRecorder()

	ac.GetPlayers(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	val, ok := cache.Get("players")
	assert.True(t, ok)
	assert.NotEmpty(t, val)
}

func TestGetPlayers_CacheHitSkipsService(t *testing.T) {
	cache := newMockCache()
	cachedData, _ := json.Marshal([]models.PlayerSummary{{ID: 9, Name: "Cached"}})
	cache.Set("players", cachedData)

	svc := playingService()
	svc.players = []models.PlayerSummary{{ID: 1, Name: "Fresh"}}
	ac := newTestController(svc, cache)

	req := httptest.NewRequest(http.MethodGet, "/players", nil)
	rr := httptest.NewRecorder()

	ac.GetPlayers(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, string(cachedData), rr.Body.String())
}

// --- query helper tests ---

func TestGetMode_Default(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/state", nil)
	assert.Equal(t, game.ModeClassic, getMode(req))
}

func TestGetMode_Custom(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/state?mode=lineup", nil)
	assert.Equal(t, game.ModeLineup, getMode(req))
}

func TestGetFingerprint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/state?f=abc", nil)
	assert.Equal(t, "abc", getFingerprint(req))
}
