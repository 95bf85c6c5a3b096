// Command revisify is a markdown note editor with live preview and a viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/revisify/internal/adapters/driven/config/file"
	"github.com/custodia-labs/revisify/internal/adapters/driven/render/html"
	"github.com/custodia-labs/revisify/internal/adapters/driven/render/terminal"
	filestore "github.com/custodia-labs/revisify/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/revisify/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/revisify/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/revisify/internal/adapters/driving/cli"
	"github.com/custodia-labs/revisify/internal/adapters/driving/web"
	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/core/ports/driven"
	"github.com/custodia-labs/revisify/internal/core/services"
	"github.com/custodia-labs/revisify/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	configDir := filepath.Join(home, ".revisify")

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	store, err := openStore(settings.Store, filepath.Join(configDir, "data"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening draft store: %v\n", err)
		return err
	}
	defer store.Close()

	templates, err := file.NewTemplateStore(filepath.Join(configDir, "templates"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	// Browser, CLI and MCP share the HTML pipeline.
	htmlRenderer := html.New(html.WithHighlightStyle(settings.Render.HighlightStyle))
	edit := services.NewEditSession(store, htmlRenderer, nil)
	edit.SetTemplates(templates)
	publisher := services.NewPublisher(edit, store)
	viewer := services.NewViewer(store, htmlRenderer)
	viewer.SetTemplates(templates)

	// The terminal editor renders its panes with glamour.
	previewRenderer := terminal.New(settings.Render.TerminalStyle)
	viewerRenderer := terminal.New(settings.Render.TerminalStyle)
	termEdit := services.NewEditSession(store, previewRenderer, nil)
	termEdit.SetTemplates(templates)
	termViewer := services.NewViewer(store, viewerRenderer)
	termViewer.SetTemplates(templates)

	css, err := htmlRenderer.CSS()
	if err != nil {
		logger.Warn("Highlight style %q unavailable: %v", settings.Render.HighlightStyle, err)
	}

	cli.SetVersion(version)
	cli.SetServices(edit, publisher, viewer)
	cli.SetRenderer(htmlRenderer)
	cli.SetSettingsService(settingsService)
	cli.SetConfigStore(configStore)
	cli.SetTUIConfig(&cli.TUIConfig{
		EditService:    termEdit,
		PublishService: services.NewPublisher(termEdit, store),
		ViewService:    termViewer,
		PreviewResizer: previewRenderer,
		ViewerResizer:  viewerRenderer,
		PollInterval:   settings.Viewer.PollInterval,
		LogFile:        filepath.Join(configDir, "revisify.log"),
	})
	cli.SetServeConfig(&cli.ServeConfig{
		Addr: settings.Server.Addr,
		Web: web.Config{
			RateLimit:    settings.Server.RateLimit,
			PollInterval: settings.Viewer.PollInterval,
			HighlightCSS: css,
		},
	})

	return cli.Execute(ctx)
}

// openStore opens the draft store selected in settings.
func openStore(s domain.StoreSettings, defaultDir string) (driven.DraftStore, error) {
	dir := s.Path
	if dir == "" {
		dir = defaultDir
	}

	switch s.Backend {
	case domain.StoreBackendFile:
		store, err := filestore.NewStore(dir)
		if err != nil {
			return nil, err
		}
		return store, nil
	case domain.StoreBackendMemory:
		return memory.NewDraftStore(), nil
	case domain.StoreBackendSQLite:
		store, err := sqlite.NewStore(dir)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: store backend %q", domain.ErrInvalidInput, s.Backend)
	}
}
