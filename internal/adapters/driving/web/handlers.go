package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/revisify/internal/adapters/driven/prompt"
	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/core/services"
	"github.com/custodia-labs/revisify/internal/logger"
)

// selectionRequest is the textarea selection sent with every edit.
type selectionRequest struct {
	Start *int `json:"start,omitempty"`
	End   *int `json:"end,omitempty"`
}

type textRequest struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type insertRequest struct {
	selectionRequest
	Before string `json:"before"`
	After  string `json:"after"`
}

type wrapRequest struct {
	selectionRequest
	Label string `json:"label"`
}

type imageRequest struct {
	selectionRequest
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type clearRequest struct {
	Confirm bool `json:"confirm"`
}

// stateResponse mirrors the edit session after a call.
type stateResponse struct {
	Text      string           `json:"text"`
	Selection domain.Selection `json:"selection"`
	HTML      string           `json:"html"`
	Counts    domain.Counts    `json:"counts"`
}

type publishResponse struct {
	Revision    string    `json:"revision"`
	PublishedAt time.Time `json:"published_at"`
}

type clearResponse struct {
	Cleared bool `json:"cleared"`
	stateResponse
}

// noteResponse is what the viewer page displays.
type noteResponse struct {
	Published   bool       `json:"published"`
	Source      string     `json:"source"`
	HTML        string     `json:"html"`
	Revision    string     `json:"revision,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleState reports the session as it stands. Only the first request
// loads the draft, so another tab does not reset the selection.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if _, err := s.ports.Edit.Snapshot(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

// handleText receives the textarea content after every input event.
func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sel := domain.Selection{Start: req.Start, End: req.End}
	if _, err := s.ports.Edit.OnTextChanged(r.Context(), req.Text, sel); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	var req insertRequest
	if !decodeJSON(w, r, &req) || !s.applySelection(w, req.selectionRequest) {
		return
	}

	if _, err := s.ports.Edit.Insert(r.Context(), req.Before, req.After); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleWrap(w http.ResponseWriter, r *http.Request) {
	var req wrapRequest
	if !decodeJSON(w, r, &req) || !s.applySelection(w, req.selectionRequest) {
		return
	}

	if _, err := s.ports.Edit.WrapSelection(r.Context(), req.Label); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if !decodeJSON(w, r, &req) || !s.applySelection(w, req) {
		return
	}

	if _, err := s.ports.Edit.InsertTableTemplate(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

// handleImage accepts either a multipart upload (field "image") or a JSON
// image reference.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		s.handleImageUpload(w, r)
		return
	}

	var req imageRequest
	if !decodeJSON(w, r, &req) || !s.applySelection(w, req.selectionRequest) {
		return
	}

	if _, err := s.ports.Edit.InsertImage(r.Context(), req.Alt, req.URL); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleImageUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid upload: "+err.Error())
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}

	sel, err := formSelection(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.applySelection(w, sel) {
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "application/octet-stream" {
		mimeType = ""
	}
	if _, err := s.ports.Edit.InsertImageData(r.Context(), header.Filename, mimeType, data); err != nil {
		writeServiceError(w, err)
		return
	}
	logger.Debug("Inserted uploaded image %s (%d bytes)", header.Filename, len(data))
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	note, err := s.ports.Publish.Publish(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, publishResponse{
		Revision:    note.Revision,
		PublishedAt: note.PublishedAt,
	})
}

// handleClear clears only when the page has already asked the user.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	var req clearRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	answer := prompt.Declined()
	if req.Confirm {
		answer = prompt.Confirmed()
	}

	cleared, err := s.ports.Edit.Clear(services.WithPrompter(r.Context(), answer))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clearResponse{Cleared: cleared, stateResponse: s.state()})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	export := s.ports.Edit.Export(r.Context())

	w.Header().Set("Content-Type", export.MIMEType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Content)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(export.Content); err != nil {
		logger.Warn("Failed to write export response: %v", err)
	}
}

func (s *Server) handleNote(w http.ResponseWriter, r *http.Request) {
	viewed, err := s.ports.View.Load(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newNoteResponse(viewed))
}

// applySelection moves the session selection when the request carries one.
func (s *Server) applySelection(w http.ResponseWriter, req selectionRequest) bool {
	if req.Start == nil && req.End == nil {
		return true
	}

	sel := s.ports.Edit.Buffer().Selection
	if req.Start != nil {
		sel = domain.Caret(*req.Start)
	}
	if req.End != nil {
		sel.End = *req.End
	}

	if err := s.ports.Edit.Select(sel); err != nil {
		writeServiceError(w, err)
		return false
	}
	return true
}

func (s *Server) state() stateResponse {
	buf := s.ports.Edit.Buffer()
	rendered := s.ports.Edit.Rendered()
	return stateResponse{
		Text:      buf.Text,
		Selection: buf.Selection,
		HTML:      rendered.HTML,
		Counts:    rendered.Counts,
	}
}

func newNoteResponse(viewed *domain.ViewedNote) noteResponse {
	resp := noteResponse{
		Published: !viewed.IsPlaceholder(),
		Source:    viewed.Source,
		HTML:      viewed.HTML,
		Revision:  viewed.Revision(),
	}
	if viewed.Note != nil {
		at := viewed.Note.PublishedAt
		resp.PublishedAt = &at
	}
	return resp
}

// formSelection reads optional start and end form values.
func formSelection(r *http.Request) (selectionRequest, error) {
	var sel selectionRequest
	for name, dst := range map[string]**int{"start": &sel.Start, "end": &sel.End} {
		raw := r.FormValue(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return sel, fmt.Errorf("invalid %s: %q", name, raw)
		}
		*dst = &v
	}
	return sel, nil
}

// decodeJSON reads the request body into dst. An empty body leaves dst zero.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
	return false
}

// writeServiceError maps domain errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidSelection),
		errors.Is(err, domain.ErrUnknownBlock),
		errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		logger.Error("request failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to write JSON response: %v", err)
	}
}
