package controllers

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"psgdle/internal/providers"
	"psgdle/internal/services"
)

type HealthController struct {
	service   services.GameServiceInterface
	store     providers.EntryCounter
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	DatasetReady  bool    `json:"dataset_ready"`
	Players       int     `json:"players"`
	StoredEntries int     `json:"stored_entries"`
}

// Health reports "degraded" instead of failing when the dataset did not
// resolve: the process is healthy, gameplay is not.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	status := "ok"
	if !hc.service.Ready() {
		status = "degraded"
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        status,
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		DatasetReady:  hc.service.Ready(),
		Players:       len(hc.service.Players()),
		StoredEntries: hc.store.Len(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.GameServiceInterface, store providers.EntryCounter) *HealthController {
	return &HealthController{
		service:   service,
		store:     store,
		startTime: time.Now(),
	}
}
