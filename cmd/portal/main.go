package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ndtran/police-portal/internal/api"
	"github.com/ndtran/police-portal/internal/app"
	"github.com/ndtran/police-portal/internal/logging"
	"github.com/ndtran/police-portal/internal/model"
	"github.com/ndtran/police-portal/internal/notify"
	"github.com/ndtran/police-portal/internal/session"
	appsync "github.com/ndtran/police-portal/internal/sync"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	// Phase 1: restore the previous session synchronously so the first
	// render never flashes a logged-out state.
	sess, err := session.Open(
		filepath.Join(cfg.DataDir, "session.db"), nil, logger,
	)
	if err != nil {
		return err
	}
	defer sess.Close()

	client := api.NewClient(
		cfg.Server.BaseURL,
		time.Duration(cfg.Server.TimeoutSec)*time.Second,
		logger,
	)
	client.SetToken(sess.Token())

	// Keep the client's credential bound to the session for the life of
	// the process: login and logout flow through the store, and the
	// watch delivers the new token here.
	sessionEvents, unwatch := sess.Watch()
	defer unwatch()
	go func() {
		for p := range sessionEvents {
			client.SetToken(p.Token)
		}
	}()

	state := notify.NewStore()
	engine := appsync.New(
		client,
		api.IsAuthError,
		sess,
		state,
		time.Duration(cfg.Notifications.PollIntervalSec)*time.Second,
		logger,
	)
	defer engine.Stop()

	// Phase 2: hand over to the UI.
	root := app.New(
		client, sess, state, engine,
		time.Duration(cfg.Notifications.ToastDurationSec)*time.Second,
	)

	program := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
