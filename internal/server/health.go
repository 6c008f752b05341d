package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/cipherloom-go/internal/config"
	"github.com/cipherloom-go/internal/encryption"
	"github.com/cipherloom-go/internal/handler"
)

var startTime = time.Now()

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	Uptime       string `json:"uptime"`
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAlloc     uint64 `json:"mem_alloc_mb"`
	Ciphers      int    `json:"ciphers"`
}

// HealthHandler returns server health status
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	resp := HealthResponse{
		Status:       "ok",
		Version:      config.Version,
		Uptime:       time.Since(startTime).Round(time.Second).String(),
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		MemAlloc:     m.Alloc / 1024 / 1024, // MB
		Ciphers:      len(encryption.ListRegistered()),
	}

	handler.RespondJSON(w, http.StatusOK, resp)
}

// ReadyHandler reports ready once every cipher is registered
func ReadyHandler(w http.ResponseWriter, r *http.Request) {
	for _, k := range encryption.AllKinds {
		if !encryption.IsRegistered(k) {
			handler.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"reason": "cipher not registered: " + string(k),
			})
			return
		}
	}
	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
