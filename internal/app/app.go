// Package app contains the root application model and the backend service
// graph it runs on.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nothingTVatYT/Seed/internal/log"
	"github.com/nothingTVatYT/Seed/internal/ui/logoverlay"
	"github.com/nothingTVatYT/Seed/internal/ui/manager"
	"github.com/nothingTVatYT/Seed/internal/watcher"
)

// Model is the root application state. It hosts the manager screen and,
// in debug mode, the log overlay on top of it.
type Model struct {
	manager manager.Model
	backend *Backend

	width  int
	height int

	debugMode    bool
	logOverlay   logoverlay.Model
	logListenCmd tea.Cmd

	// File watcher for engines-directory auto-refresh
	watcherHandle  *watcher.Watcher
	watcherChanges <-chan struct{}
}

// New creates the root model over backend. debugMode enables the log
// overlay (Ctrl+X toggle).
func New(backend *Backend, debugMode bool) Model {
	var (
		watcherHandle  *watcher.Watcher
		watcherChanges <-chan struct{}
	)

	if backend.Config.AutoRefresh {
		w, err := watcher.New(watcher.Config{
			Root:     backend.Config.EnginesDir,
			Debounce: backend.Config.AutoRefreshDebounce,
		})
		if err == nil {
			if changes, startErr := w.Start(); startErr == nil {
				watcherHandle = w
				watcherChanges = changes
			} else {
				_ = w.Stop()
			}
		}
		// Without the watcher the refresh key still covers manual rescans.
	}

	mgr := manager.New(manager.Config{
		Controller: backend.Controller,
		Notices:    backend.Notices,
		Icons:      backend.Icons,
		UI:         backend.Config.UI,
		Rescan:     backend.Rescan,
	})

	overlay := logoverlay.New()
	var logListenCmd tea.Cmd
	if debugMode {
		logListenCmd = overlay.StartListening()
	}

	return Model{
		manager:        mgr,
		backend:        backend,
		debugMode:      debugMode,
		logOverlay:     overlay,
		logListenCmd:   logListenCmd,
		watcherHandle:  watcherHandle,
		watcherChanges: watcherChanges,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.manager.Init()}

	if m.watcherChanges != nil {
		cmds = append(cmds, waitForEngineChange(m.watcherChanges))
	}

	if m.logListenCmd != nil {
		cmds = append(cmds, m.logListenCmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.manager = m.manager.SetSize(msg.Width, msg.Height)
		m.logOverlay.SetSize(msg.Width, msg.Height)

		return m, nil

	case tea.MouseMsg:
		// Route mouse events to the log overlay when visible
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}

	case log.LogEvent:
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd

	case logoverlay.CloseMsg:
		return m, nil

	case tea.KeyMsg:
		if m.debugMode && msg.String() == "ctrl+x" {
			m.logOverlay.Toggle()
			return m, nil
		}

		// A visible log overlay takes precedence for key handling
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}

	case engineDirChangedMsg:
		if err := m.backend.Rescan(context.Background()); err != nil {
			log.ErrorErr(log.CatEngine, "auto-refresh rescan failed", err)
		}
		return m, waitForEngineChange(m.watcherChanges)
	}

	// Everything else belongs to the manager screen.
	var cmd tea.Cmd
	m.manager, cmd = m.manager.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	view := m.manager.View()

	// Overlay the log viewer on top (only in debug mode when visible)
	if m.debugMode && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}

	return view
}

// Close releases resources held by the application model.
func (m *Model) Close() error {
	m.logOverlay.StopListening()

	if err := m.manager.Close(); err != nil {
		return err
	}

	if m.watcherHandle != nil {
		return m.watcherHandle.Stop()
	}
	return nil
}

// Message types

// engineDirChangedMsg signals a settled burst of changes in the engines
// directory.
type engineDirChangedMsg struct{}

// Async commands

// waitForEngineChange blocks until the watcher signals or shuts down.
func waitForEngineChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return engineDirChangedMsg{}
	}
}
