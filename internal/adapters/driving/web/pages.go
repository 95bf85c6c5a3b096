package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/logger"
)

//go:embed assets/*.html assets/*.css
var assets embed.FS

// blockButton is a toolbar entry that wraps the selection.
type blockButton struct {
	Label    string
	Title    string
	Shortcut string
}

type pageData struct {
	HighlightCSS template.CSS
	Blocks       []blockButton
}

type pages struct {
	editor *template.Template
	viewer *template.Template
	css    []byte
}

func newPages() (*pages, error) {
	editor, err := template.ParseFS(assets, "assets/editor.html")
	if err != nil {
		return nil, fmt.Errorf("parse editor page: %w", err)
	}
	viewer, err := template.ParseFS(assets, "assets/viewer.html")
	if err != nil {
		return nil, fmt.Errorf("parse viewer page: %w", err)
	}
	css, err := assets.ReadFile("assets/style.css")
	if err != nil {
		return nil, fmt.Errorf("read stylesheet: %w", err)
	}
	return &pages{editor: editor, viewer: viewer, css: css}, nil
}

func (s *Server) pageData() pageData {
	shortcuts := map[domain.BlockLabel]string{
		domain.BlockDefinition: "Ctrl+D",
		domain.BlockTheory:     "Ctrl+T",
	}

	labels := domain.BlockLabels()
	blocks := make([]blockButton, len(labels))
	for i, l := range labels {
		blocks[i] = blockButton{
			Label:    l.String(),
			Title:    l.Title(),
			Shortcut: shortcuts[l],
		}
	}

	return pageData{
		// Generated by chroma from a named style, never user input
		HighlightCSS: template.CSS(s.cfg.HighlightCSS), //nolint:gosec
		Blocks:       blocks,
	}
}

func (s *Server) handleEditorPage(w http.ResponseWriter, _ *http.Request) {
	s.writePage(w, s.pages.editor)
}

func (s *Server) handleViewerPage(w http.ResponseWriter, _ *http.Request) {
	s.writePage(w, s.pages.viewer)
}

func (s *Server) handleStylesheet(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if _, err := w.Write(s.pages.css); err != nil {
		logger.Warn("Failed to write stylesheet: %v", err)
	}
}

// writePage renders into a buffer so a template error never sends half a page.
func (s *Server) writePage(w http.ResponseWriter, tmpl *template.Template) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, s.pageData()); err != nil {
		logger.Error("render page %s: %v", tmpl.Name(), err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn("Failed to write page: %v", err)
	}
}
