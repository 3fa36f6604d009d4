package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/placement-tracker/internal/repository"
)

// changeBuffer is how many undelivered changes a slow event client may queue.
const changeBuffer = 32

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteComment sends a comment line, used as a keep-alive
func (s *SSEWriter) WriteComment(text string) error {
	if _, err := fmt.Fprintf(s.w, ": %s\n\n", text); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) error {
	return s.WriteEvent("error", map[string]string{"error": message})
}

// droppedMessage tells a client that changes were lost and it should reload.
const droppedMessage = "changes were dropped, reload state"

// handleEvents streams a "changed" event for every repository write until the
// client disconnects or the server shuts down. A client that fell behind gets
// an "error" event before the next delivered change.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	clientID := uuid.NewString()
	log := s.logger.With("client_id", clientID)

	var dropped atomic.Bool
	changes := make(chan repository.Change, changeBuffer)
	unsubscribe := s.tracker.Repository().Subscribe(func(c repository.Change) {
		select {
		case changes <- c:
		default:
			dropped.Store(true)
			log.Warn("event client too slow, dropping change", "key", c.Key)
		}
	})
	defer unsubscribe()

	if err := sse.WriteEvent("ready", map[string]string{"client_id": clientID}); err != nil {
		return
	}
	log.Debug("event client connected")

	ticker := time.NewTicker(s.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Debug("event client disconnected")
			return
		case <-s.done:
			return
		case c := <-changes:
			if dropped.Swap(false) {
				if err := sse.WriteError(droppedMessage); err != nil {
					return
				}
			}
			if err := sse.WriteEvent("changed", c); err != nil {
				return
			}
		case <-ticker.C:
			if err := sse.WriteComment("ping"); err != nil {
				return
			}
		}
	}
}
