package discord

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// HealthStatus represents the bot's health status
type HealthStatus struct {
	Status           string `json:"status"`
	Uptime           string `json:"uptime"`
	Connected        bool   `json:"connected"`
	CommandsReceived int64  `json:"commands_received"`
	LastCommandUnix  int64  `json:"last_command_unix,omitempty"`
	APIReachable     bool   `json:"api_reachable"`
}

var (
	startTime       = time.Now()
	commandCounter  atomic.Int64
	lastCommandUnix atomic.Int64
)

// RecordCommand increments the command counter
func RecordCommand() {
	commandCounter.Add(1)
	lastCommandUnix.Store(time.Now().Unix())
}

// HandleHealth returns the bot's health status
func (h *HTTPServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	connected := h.bot.Session != nil && h.bot.Session.DataReady
	apiReachable := h.bot.Client != nil && h.bot.Client.Healthy()

	status := "healthy"
	code := http.StatusOK
	if !connected || !apiReachable {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	health := HealthStatus{
		Status:           status,
		Uptime:           time.Since(startTime).String(),
		Connected:        connected,
		CommandsReceived: commandCounter.Load(),
		LastCommandUnix:  lastCommandUnix.Load(),
		APIReachable:     apiReachable,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// Headers are sent; nothing useful to do with an encode error
	_ = json.NewEncoder(w).Encode(health)
}
