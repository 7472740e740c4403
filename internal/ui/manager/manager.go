// Package manager implements the project manager screen: a table of
// registered projects with reconciliation badges, plus the overlays for
// engine selection, import, removal and launch-argument editing.
package manager

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nothingTVatYT/Seed/internal/config"
	"github.com/nothingTVatYT/Seed/internal/engine"
	"github.com/nothingTVatYT/Seed/internal/icon"
	"github.com/nothingTVatYT/Seed/internal/keys"
	"github.com/nothingTVatYT/Seed/internal/lifecycle"
	"github.com/nothingTVatYT/Seed/internal/pubsub"
	"github.com/nothingTVatYT/Seed/internal/ui/help"
	"github.com/nothingTVatYT/Seed/internal/ui/modal"
	"github.com/nothingTVatYT/Seed/internal/ui/picker"
	"github.com/nothingTVatYT/Seed/internal/ui/styles"
	"github.com/nothingTVatYT/Seed/internal/ui/toaster"
)

// ViewMode determines which overlay is active.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewHelp
	ViewEnginePicker
	ViewImportModal
	ViewRemoveModal
	ViewArgsModal
)

// Config carries the collaborators the manager screen needs.
type Config struct {
	Controller *lifecycle.Controller
	Notices    *NoticeHub
	Icons      *icon.Loader
	UI         config.UIConfig

	// Rescan re-reads the engines directory and syncs the registry.
	// Nil disables the refresh key.
	Rescan func(ctx context.Context) error
}

// Model is the manager screen state.
type Model struct {
	ctrl   *lifecycle.Controller
	icons  *icon.Loader
	rescan func(ctx context.Context) error

	ctx    context.Context
	cancel context.CancelFunc

	keys   keys.KeyMap
	table  table
	help   help.Model
	picker picker.Model
	modal  modal.Model
	toast  toaster.Model

	view   ViewMode
	width  int
	height int

	showStatusBar bool
	confirmRemove bool

	statusCh       <-chan pubsub.Event[lifecycle.StatusChange]
	noticeListener *pubsub.ContinuousListener[lifecycle.Notice]

	// pendingPath is the project an open modal or picker is acting on.
	pendingPath string

	// iconsByPath records which projects have a decodable icon. A path
	// that is present with a false value has been probed and has none.
	iconsByPath map[string]bool

	err        error
	errContext string // Context for the error (e.g., "running project")
}

// New creates the manager screen. Close must be called to release the
// controller and notice subscriptions.
func New(cfg Config) Model {
	ctx, cancel := context.WithCancel(context.Background())

	var noticeListener *pubsub.ContinuousListener[lifecycle.Notice]
	if cfg.Notices != nil {
		noticeListener = pubsub.NewContinuousListener(ctx, cfg.Notices.broker)
	}

	m := Model{
		ctrl:           cfg.Controller,
		icons:          cfg.Icons,
		rescan:         cfg.Rescan,
		ctx:            ctx,
		cancel:         cancel,
		keys:           keys.DefaultKeyMap(),
		table:          newTable(),
		help:           help.New(),
		toast:          toaster.New(),
		view:           ViewList,
		showStatusBar:  cfg.UI.ShowStatusBar,
		confirmRemove:  cfg.UI.ConfirmRemove,
		statusCh:       cfg.Controller.Subscribe(ctx),
		noticeListener: noticeListener,
		iconsByPath:    map[string]bool{},
	}
	return m.syncRows()
}

// Init starts the event listeners and the initial icon loads.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{pubsub.ListenCmd(m.ctx, m.statusCh)}
	if m.noticeListener != nil {
		cmds = append(cmds, m.noticeListener.Listen())
	}
	cmds = append(cmds, m.iconLoadCmds()...)
	return tea.Batch(cmds...)
}

// SetSize handles terminal resize.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.table = m.table.SetSize(width, m.tableHeight())
	m.help = m.help.SetSize(width, height)
	m.toast = m.toast.SetSize(width, height)
	if m.view == ViewEnginePicker {
		m.picker = m.picker.SetSize(width, height)
	}
	if m.view == ViewImportModal || m.view == ViewRemoveModal || m.view == ViewArgsModal {
		m.modal.SetSize(width, height)
	}
	return m
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case pubsub.Event[lifecycle.StatusChange]:
		// Verdicts changed underneath us: re-read and keep listening.
		m = m.syncRows()
		return m, pubsub.ListenCmd(m.ctx, m.statusCh)

	case pubsub.Event[lifecycle.Notice]:
		return m.handleNotice(msg.Payload)

	case iconLoadedMsg:
		m.iconsByPath[msg.path] = msg.ok
		return m.syncRows(), nil

	case runDoneMsg:
		return m.handleRunDone(msg)

	case cacheClearedMsg:
		return m.handleCacheCleared(msg)

	case templateToggledMsg:
		return m.handleTemplateToggled(msg)

	case argumentsSavedMsg:
		return m.handleArgumentsSaved(msg)

	case engineChangedMsg:
		return m.handleEngineChanged(msg)

	case projectRemovedMsg:
		return m.handleProjectRemoved(msg)

	case projectImportedMsg:
		return m.handleProjectImported(msg)

	case rescanDoneMsg:
		return m.handleRescanDone(msg)

	case modal.SubmitMsg:
		return m.handleModalSubmit(msg)

	case modal.CancelMsg:
		return m.handleModalCancel()

	case picker.CancelMsg:
		m.view = ViewList
		m.pendingPath = ""
		return m, nil

	case toaster.DismissMsg:
		m.toast = m.toast.Hide()
		return m, nil

	case clearErrorMsg:
		m.err = nil
		m.errContext = ""
		return m, nil
	}

	return m, nil
}

// View renders the table with the status bar pinned to the bottom, then
// the active overlay, then any toast on top.
func (m Model) View() string {
	canvas := lipgloss.NewStyle().
		Width(m.width).
		Height(m.tableHeight()).
		Render(m.table.View())

	view := canvas
	if m.showStatusBar {
		view += "\n"
		if m.err != nil {
			view += m.renderErrorBar()
		} else {
			view += m.renderStatusBar()
		}
	}

	switch m.view {
	case ViewHelp:
		view = m.help.Overlay(view)
	case ViewEnginePicker:
		view = m.picker.Overlay(view)
	case ViewImportModal, ViewRemoveModal, ViewArgsModal:
		view = m.modal.Overlay(view)
	}

	return m.toast.Overlay(view)
}

// Close releases the subscriptions held by the manager.
func (m *Model) Close() error {
	m.cancel()
	return nil
}

// syncRows rebuilds the table from the controller's current snapshot,
// preserving the cursor by project path.
func (m Model) syncRows() Model {
	projects := m.ctrl.Projects()
	rows := make([]projectRow, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, projectRow{
			name:       p.Name(),
			path:       p.Path(),
			version:    p.EngineVersion().String(),
			arguments:  p.Arguments(),
			status:     m.ctrl.Status(p.Path()),
			isTemplate: p.IsTemplate(),
			hasIcon:    m.iconsByPath[p.Path()],
		})
	}
	m.table = m.table.SetRows(rows)
	return m
}

// handleNotice surfaces a controller refusal as a toast. The matching
// typed error from the operation is suppressed in the result handlers so
// the user sees the refusal once.
func (m Model) handleNotice(n lifecycle.Notice) (Model, tea.Cmd) {
	style := toaster.StyleError
	if n.Kind == lifecycle.NoticeNoEngines {
		style = toaster.StyleWarn
	}
	m.toast = m.toast.Show(n.Message, style)

	cmds := []tea.Cmd{toaster.ScheduleDismiss(toaster.DefaultTTL)}
	if m.noticeListener != nil {
		cmds = append(cmds, m.noticeListener.Listen())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) tableHeight() int {
	h := m.height
	if m.showStatusBar {
		h--
	}
	if h < 0 {
		h = 0
	}
	return h
}

func (m Model) renderStatusBar() string {
	content := fmt.Sprintf("%d projects / %d engines", m.table.Len(), len(m.ctrl.Engines()))
	if row, ok := m.table.Selected(); ok {
		content += "  " + row.path
	}
	return styles.StatusBarStyle.Width(m.width).Render(content)
}

func (m Model) renderErrorBar() string {
	msg := "Error"
	if m.errContext != "" {
		msg += " " + m.errContext
	}
	msg += ": " + m.err.Error() + "  [Press any key to dismiss]"
	return styles.ErrorStyle.Width(m.width).Render(msg)
}

// iconLoadCmds starts a load for every project that has not been probed
// for an icon yet.
func (m Model) iconLoadCmds() []tea.Cmd {
	if m.icons == nil {
		return nil
	}
	var cmds []tea.Cmd
	for _, p := range m.ctrl.Projects() {
		if _, probed := m.iconsByPath[p.Path()]; probed {
			continue
		}
		cmds = append(cmds, m.loadIconCmd(p.Path(), p.IconPath()))
	}
	return cmds
}

// isRefusal reports whether err was already surfaced as a notice toast.
func isRefusal(err error) bool {
	var missing lifecycle.MissingEngineError
	var none lifecycle.NoEnginesInstalledError
	var notFound lifecycle.EngineNotFoundError
	return errors.As(err, &missing) || errors.As(err, &none) || errors.As(err, &notFound)
}

// Message types

type clearErrorMsg struct{}

type iconLoadedMsg struct {
	path string
	ok   bool
}

type runDoneMsg struct {
	path string
	err  error
}

type cacheClearedMsg struct {
	path string
	err  error
}

type templateToggledMsg struct {
	path string
	err  error
}

type argumentsSavedMsg struct {
	path string
	err  error
}

type engineChangedMsg struct {
	path    string
	version engine.Version
	err     error
}

type projectRemovedMsg struct {
	path string
	err  error
}

type projectImportedMsg struct {
	name     string
	path     string
	iconPath string
	err      error
}

type rescanDoneMsg struct {
	err error
}

// Async commands

func (m Model) runProjectCmd(path string) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return runDoneMsg{path: path, err: ctrl.Run(ctx, path)}
	}
}

func (m Model) clearCacheCmd(path string) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return cacheClearedMsg{path: path, err: ctrl.ClearCache(ctx, path)}
	}
}

func (m Model) toggleTemplateCmd(path string) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return templateToggledMsg{path: path, err: ctrl.ToggleTemplate(ctx, path)}
	}
}

func (m Model) editArgumentsCmd(path, arguments string) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return argumentsSavedMsg{path: path, err: ctrl.EditArguments(ctx, path, arguments)}
	}
}

func (m Model) changeEngineCmd(path string, v engine.Version) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return engineChangedMsg{path: path, version: v, err: ctrl.ChangeEngineVersion(ctx, path, v)}
	}
}

func (m Model) removeProjectCmd(path string) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return projectRemovedMsg{path: path, err: ctrl.RemoveProject(ctx, path)}
	}
}

func (m Model) importProjectCmd(name, path string, v engine.Version) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		p, err := ctrl.ImportProject(ctx, name, path, v)
		msg := projectImportedMsg{path: path, err: err}
		if p != nil {
			msg.name = p.Name()
			msg.path = p.Path()
			msg.iconPath = p.IconPath()
		}
		return msg
	}
}

func (m Model) rescanCmd() tea.Cmd {
	ctx, rescan := m.ctx, m.rescan
	return func() tea.Msg {
		return rescanDoneMsg{err: rescan(ctx)}
	}
}

func (m Model) loadIconCmd(path, iconPath string) tea.Cmd {
	ctx, loader := m.ctx, m.icons
	return func() tea.Msg {
		res := <-loader.Load(ctx, iconPath)
		return iconLoadedMsg{path: path, ok: res.Image != nil}
	}
}

func scheduleErrorClear() tea.Cmd {
	return tea.Tick(3*time.Second, func(_ time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}
