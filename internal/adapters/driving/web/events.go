package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/logger"
)

// handleEvents streams the published note to viewer pages.
// The current note is sent first, then one event per new revision.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	notes, err := s.ports.View.Watch(r.Context(), s.cfg.PollInterval)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	// Send initial comment to establish connection
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(keepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case viewed, ok := <-notes:
			if !ok {
				return
			}
			if err := writeNoteEvent(w, viewed); err != nil {
				logger.Debug("Viewer stream closed: %v", err)
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

// writeNoteEvent writes one "note" event. The event id is the revision, or
// a fresh id for the placeholder.
func writeNoteEvent(w http.ResponseWriter, viewed domain.ViewedNote) error {
	data, err := json.Marshal(newNoteResponse(&viewed))
	if err != nil {
		return fmt.Errorf("marshal note: %w", err)
	}

	id := viewed.Revision()
	if id == "" {
		id = uuid.NewString()
	}

	_, err = fmt.Fprintf(w, "id: %s\nevent: note\ndata: %s\n\n", id, data)
	return err
}
