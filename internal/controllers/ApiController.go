package controllers

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cast"

	"psgdle/internal/game"
	"psgdle/internal/providers"
	"psgdle/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.GameServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.GameServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func getMode(r *http.Request) string {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		return game.ModeClassic
	}
	return mode
}

func getFingerprint(r *http.Request) string {
	return r.URL.Query().Get("f")
}

// Bodies arrive from JS clients that are loose about number types, so
// ids are coerced rather than strictly decoded.
type guessPayload struct {
	PlayerID any `json:"playerId"`
}

type hintPayload struct {
	Hint string `json:"hint"`
}

type placePayload struct {
	Position string `json:"position"`
	PlayerID any    `json:"playerId"`
}

type clearPayload struct {
	Position string `json:"position"`
}

func (ac *ApiController) writeJSON(w http.ResponseWriter, status int, body any) {
	gson, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// writeError maps service errors onto HTTP statuses. An unplayable
// dataset is 503 on purpose: the process is up, the game is not.
func (ac *ApiController) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrDatasetUnavailable):
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, services.ErrUnknownMode), errors.Is(err, services.ErrWrongVariant):
		http.Error(w, "Bad Request", http.StatusBadRequest)
	default:
		ac.logger.Errorf(providers.TypeApp, "Unhandled service error: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (ac *ApiController) decode(w http.ResponseWriter, r *http.Request, payload any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		ac.writeError(w, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// CreateProfile mints the anonymous client fingerprint every other
// endpoint keys on. Stateless: nothing is stored until the first game
// operation.
func (ac *ApiController) CreateProfile(w http.ResponseWriter, r *http.Request) {
	ac.writeJSON(w, http.StatusCreated, map[string]string{
		"fingerprint": uuid.NewString(),
	})
}

// GetPlayers serves the autocomplete roster. Identical for every
// client, so it sits behind the response cache.
func (ac *ApiController) GetPlayers(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "players", func() (any, error) {
		return ac.service.Players(), nil
	})
}

func (ac *ApiController) GetState(w http.ResponseWriter, r *http.Request) {
	view, err := ac.service.StateFor(getFingerprint(r), getMode(r))
	if err != nil {
		ac.writeError(w, err)
		return
	}
	ac.writeJSON(w, http.StatusOK, view)
}

func (ac *ApiController) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	var payload guessPayload
	if !ac.decode(w, r, &payload) {
		return
	}
	view, err := ac.service.SubmitGuess(getFingerprint(r), getMode(r), cast.ToInt(payload.PlayerID))
	if err != nil {
		ac.writeError(w, err)
		return
	}
	ac.writeJSON(w, http.StatusOK, view)
}

func (ac *ApiController) ToggleHint(w http.ResponseWriter, r *http.Request) {
	var payload hintPayload
	if !ac.decode(w, r, &payload) {
		return
	}
	view, err := ac.service.ToggleHint(getFingerprint(r), getMode(r), payload.Hint)
	if err != nil {
		ac.writeError(w, err)
		return
	}
	ac.writeJSON(w, http.StatusOK, view)
}

func (ac *ApiController) PlaceLineup(w http.ResponseWriter, r *http.Request) {
	var payload placePayload
	if !ac.decode(w, r, &payload) {
		return
	}
	view, err := ac.service.PlaceLineup(getFingerprint(r), payload.Position, cast.ToInt(payload.PlayerID))
	if err != nil {
		ac.writeError(w, err)
		return
	}
	ac.writeJSON(w, http.StatusOK, view)
}

func (ac *ApiController) ClearLineup(w http.ResponseWriter, r *http.Request) {
	var payload clearPayload
	if !ac.decode(w, r, &payload) {
		return
	}
	view, err := ac.service.ClearLineup(getFingerprint(r), payload.Position)
	if err != nil {
		ac.writeError(w, err)
		return
	}
	ac.writeJSON(w, http.StatusOK, view)
}

func (ac *ApiController) ValidateLineup(w http.ResponseWriter, r *http.Request) {
	view, err := ac.service.ValidateLineup(getFingerprint(r))
	if err != nil {
		ac.writeError(w, err)
		return
	}
	ac.writeJSON(w, http.StatusOK, view)
}

func (ac *ApiController) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := ac.service.Stats(getFingerprint(r), getMode(r))
	if err != nil {
		ac.writeError(w, err)
		return
	}
	ac.writeJSON(w, http.StatusOK, stats)
}

func (ac *ApiController) ResetSession(w http.ResponseWriter, r *http.Request) {
	if err := ac.service.ResetSession(getFingerprint(r), getMode(r)); err != nil {
		ac.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) ResetStatistics(w http.ResponseWriter, r *http.Request) {
	if err := ac.service.ResetStats(getFingerprint(r), getMode(r)); err != nil {
		ac.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) GetSurprise(w http.ResponseWriter, r *http.Request) {
	view, err := ac.service.Surprise(getMode(r))
	if err != nil {
		ac.writeError(w, err)
		return
	}
	ac.writeJSON(w, http.StatusOK, view)
}
