package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// DebugHandler receives failures the browser saw while swapping fragments,
// such as a card action or a delete the server rejected, and writes them to
// the server log.
type DebugHandler struct {
	logger *log.Logger
}

type clientLogEntry struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	Status    int    `json:"status"`
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"`
}

type clientLogRequest struct {
	Path    string           `json:"path"`
	Entries []clientLogEntry `json:"entries"`
}

func NewDebugHandler(logger *log.Logger) *DebugHandler {
	h := &DebugHandler{logger: logger}
	if h.logger == nil {
		h.logger = log.New(os.Stdout, "", log.LstdFlags)
	}
	return h
}

// Capture handles POST /debug/log.
func (h *DebugHandler) Capture(w http.ResponseWriter, r *http.Request) {
	var payload clientLogRequest
	decoder := json.NewDecoder(io.LimitReader(r.Body, 64<<10))
	if err := decoder.Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return
	}

	logged := 0
	page := strings.TrimSpace(payload.Path)
	for _, entry := range payload.Entries {
		message := strings.TrimSpace(entry.Message)
		if message == "" {
			continue
		}
		level := strings.ToUpper(strings.TrimSpace(entry.Level))
		if level == "" {
			level = "ERROR"
		}
		ts := strings.TrimSpace(entry.Timestamp)
		if ts == "" {
			ts = time.Now().UTC().Format(time.RFC3339)
		}
		h.logger.Printf("[browser][level=%s] page=%q url=%q status=%d ts=%s message=%s",
			level, page, entry.URL, entry.Status, ts, message)
		logged++
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "logged": logged})
}
