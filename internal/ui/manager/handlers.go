package manager

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nothingTVatYT/Seed/internal/engine"
	"github.com/nothingTVatYT/Seed/internal/lifecycle"
	"github.com/nothingTVatYT/Seed/internal/ui/modal"
	"github.com/nothingTVatYT/Seed/internal/ui/picker"
	"github.com/nothingTVatYT/Seed/internal/ui/toaster"
)

const modalMessageWidth = 50

// handleKey routes key messages to the handler for the active view.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.view {
	case ViewHelp:
		return m.handleHelpKey(msg)
	case ViewEnginePicker:
		return m.handleEnginePickerKey(msg)
	case ViewImportModal, ViewRemoveModal, ViewArgsModal:
		return m.handleModalKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help):
		m.view = ViewList
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Dismiss a shown error on any key press except quit.
	// Don't return early - the key continues to be processed.
	if m.err != nil && !key.Matches(msg, m.keys.Quit) {
		m.err = nil
		m.errContext = ""
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.view = ViewHelp
		return m, nil

	case key.Matches(msg, m.keys.ToggleStatus):
		m.showStatusBar = !m.showStatusBar
		// Recalculate table height since available space changed
		m.table = m.table.SetSize(m.width, m.tableHeight())
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.rescan == nil {
			return m, nil
		}
		return m, m.rescanCmd()

	case key.Matches(msg, m.keys.Run):
		if row, ok := m.table.Selected(); ok {
			return m, m.runProjectCmd(row.path)
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearCache):
		if row, ok := m.table.Selected(); ok {
			return m, m.clearCacheCmd(row.path)
		}
		return m, nil

	case key.Matches(msg, m.keys.OpenFolder):
		// Fire-and-forget; the controller logs failures.
		if row, ok := m.table.Selected(); ok {
			m.ctrl.OpenFolder(row.path)
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleTemplate):
		if row, ok := m.table.Selected(); ok {
			return m, m.toggleTemplateCmd(row.path)
		}
		return m, nil

	case key.Matches(msg, m.keys.ChangeEngine):
		return m.openEnginePicker()

	case key.Matches(msg, m.keys.EditArgs):
		return m.openArgsModal()

	case key.Matches(msg, m.keys.Remove):
		return m.openRemoveModal()

	case key.Matches(msg, m.keys.Import):
		return m.openImportModal()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleEnginePickerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		path := m.pendingPath
		m.view = ViewList
		m.pendingPath = ""
		v, err := engine.ParseVersion(m.picker.Selected().Value)
		if err != nil {
			m.err = err
			m.errContext = "changing engine"
			return m, scheduleErrorClear()
		}
		return m, m.changeEngineCmd(path, v)
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m Model) handleModalKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

// openEnginePicker shows the installed versions for the selected project,
// newest first.
func (m Model) openEnginePicker() (Model, tea.Cmd) {
	row, ok := m.table.Selected()
	if !ok {
		return m, nil
	}

	engines := m.ctrl.Engines()
	if len(engines) == 0 {
		m.toast = m.toast.Show("No engines installed", toaster.StyleWarn)
		return m, toaster.ScheduleDismiss(toaster.DefaultTTL)
	}

	// The registry snapshot is ascending; present newest first.
	options := make([]picker.Option, 0, len(engines))
	for i := len(engines) - 1; i >= 0; i-- {
		v := engines[i].Version().String()
		label := v
		if i == len(engines)-1 {
			label += " (newest)"
		}
		options = append(options, picker.Option{Label: label, Value: v})
	}

	m.picker = picker.New("Engine Version", options).
		SetSelected(picker.FindIndexByValue(options, row.version)).
		SetSize(m.width, m.height)
	m.pendingPath = row.path
	m.view = ViewEnginePicker
	return m, nil
}

func (m Model) openArgsModal() (Model, tea.Cmd) {
	row, ok := m.table.Selected()
	if !ok {
		return m, nil
	}

	m.modal = modal.New(modal.Config{
		Title: "Launch Arguments",
		Inputs: []modal.InputConfig{
			{
				Key:         "arguments",
				Label:       "Arguments",
				Placeholder: "--verbose --fullscreen",
				Value:       row.arguments,
				AllowEmpty:  true,
			},
		},
	})
	m.modal.SetSize(m.width, m.height)
	m.pendingPath = row.path
	m.view = ViewArgsModal
	return m, m.modal.Init()
}

func (m Model) openRemoveModal() (Model, tea.Cmd) {
	row, ok := m.table.Selected()
	if !ok {
		return m, nil
	}

	if !m.confirmRemove {
		return m, m.removeProjectCmd(row.path)
	}

	prompt := fmt.Sprintf("Remove '%s' from the project list? Files on disk are left alone.", row.name)
	m.modal = modal.New(modal.Config{
		Title:          "Remove Project",
		Message:        wordwrap.String(prompt, modalMessageWidth),
		ConfirmVariant: modal.ButtonDanger,
	})
	m.modal.SetSize(m.width, m.height)
	m.pendingPath = row.path
	m.view = ViewRemoveModal
	return m, m.modal.Init()
}

func (m Model) openImportModal() (Model, tea.Cmd) {
	versionPlaceholder := "newest installed"
	if newest, ok := m.newestEngine(); ok {
		versionPlaceholder = newest.Version().String() + " (newest)"
	}

	m.modal = modal.New(modal.Config{
		Title: "Import Project",
		Inputs: []modal.InputConfig{
			{Key: "path", Label: "Path", Placeholder: "/home/me/projects/my-game"},
			{Key: "name", Label: "Name", Placeholder: "defaults to the folder name", AllowEmpty: true},
			{Key: "version", Label: "Engine Version", Placeholder: versionPlaceholder, AllowEmpty: true},
		},
	})
	m.modal.SetSize(m.width, m.height)
	m.view = ViewImportModal
	return m, m.modal.Init()
}

// handleModalSubmit dispatches the submitted values based on which modal
// was open.
func (m Model) handleModalSubmit(msg modal.SubmitMsg) (Model, tea.Cmd) {
	view := m.view
	m.view = ViewList

	switch view {
	case ViewImportModal:
		return m.submitImport(msg.Values)

	case ViewRemoveModal:
		path := m.pendingPath
		m.pendingPath = ""
		if path == "" {
			return m, nil
		}
		return m, m.removeProjectCmd(path)

	case ViewArgsModal:
		path := m.pendingPath
		m.pendingPath = ""
		if path == "" {
			return m, nil
		}
		return m, m.editArgumentsCmd(path, msg.Values["arguments"])
	}

	return m, nil
}

func (m Model) submitImport(values map[string]string) (Model, tea.Cmd) {
	name := strings.TrimSpace(values["name"])
	path := strings.TrimSpace(values["path"])

	// An empty version means "pin to the newest installed engine".
	var v engine.Version
	if raw := strings.TrimSpace(values["version"]); raw != "" {
		parsed, err := engine.ParseVersion(raw)
		if err != nil {
			m.err = err
			m.errContext = "importing project"
			return m, scheduleErrorClear()
		}
		v = parsed
	} else {
		newest, ok := m.newestEngine()
		if !ok {
			m.err = lifecycle.NoEnginesInstalledError{}
			m.errContext = "importing project"
			return m, scheduleErrorClear()
		}
		v = newest.Version()
	}

	return m, m.importProjectCmd(name, path, v)
}

func (m Model) handleModalCancel() (Model, tea.Cmd) {
	m.view = ViewList
	m.pendingPath = ""
	return m, nil
}

// newestEngine returns the highest installed version.
func (m Model) newestEngine() (engine.Engine, bool) {
	engines := m.ctrl.Engines()
	if len(engines) == 0 {
		return engine.Engine{}, false
	}
	return engines[len(engines)-1], true
}

// handleRunDone processes launch results.
func (m Model) handleRunDone(msg runDoneMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		if isRefusal(msg.err) {
			return m.syncRows(), nil
		}
		m.err = msg.err
		m.errContext = "running project"
		return m, scheduleErrorClear()
	}
	m.toast = m.toast.Show("Project launched", toaster.StyleSuccess)
	return m.syncRows(), toaster.ScheduleDismiss(2 * time.Second)
}

// handleCacheCleared processes cache clear results.
func (m Model) handleCacheCleared(msg cacheClearedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		if isRefusal(msg.err) {
			return m.syncRows(), nil
		}
		m.err = msg.err
		m.errContext = "clearing build cache"
		return m, scheduleErrorClear()
	}
	m.toast = m.toast.Show("Build cache cleared", toaster.StyleSuccess)
	return m, toaster.ScheduleDismiss(2 * time.Second)
}

// handleTemplateToggled processes template flag results. The toast text
// reflects the state after the flip.
func (m Model) handleTemplateToggled(msg templateToggledMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.errContext = "toggling template"
		return m, scheduleErrorClear()
	}
	m = m.syncRows()
	text := "Template flag cleared"
	if row, ok := m.table.RowByPath(msg.path); ok && row.isTemplate {
		text = "Marked as template"
	}
	m.toast = m.toast.Show(text, toaster.StyleSuccess)
	return m, toaster.ScheduleDismiss(2 * time.Second)
}

// handleArgumentsSaved processes launch-argument edit results.
func (m Model) handleArgumentsSaved(msg argumentsSavedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.errContext = "saving arguments"
		return m, scheduleErrorClear()
	}
	m = m.syncRows()
	m.toast = m.toast.Show("Arguments updated", toaster.StyleSuccess)
	return m, toaster.ScheduleDismiss(2 * time.Second)
}

// handleEngineChanged processes engine pin results.
func (m Model) handleEngineChanged(msg engineChangedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		if isRefusal(msg.err) {
			return m, nil
		}
		m.err = msg.err
		m.errContext = "changing engine"
		return m, scheduleErrorClear()
	}
	m = m.syncRows()
	m.toast = m.toast.Show("Engine set to "+msg.version.String(), toaster.StyleSuccess)
	return m, toaster.ScheduleDismiss(2 * time.Second)
}

// handleProjectRemoved processes removal results.
func (m Model) handleProjectRemoved(msg projectRemovedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.errContext = "removing project"
		return m, scheduleErrorClear()
	}
	m = m.syncRows()
	m.toast = m.toast.Show("Project removed", toaster.StyleSuccess)
	return m, toaster.ScheduleDismiss(2 * time.Second)
}

// handleProjectImported processes import results and follows the cursor
// to the new entry.
func (m Model) handleProjectImported(msg projectImportedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		if isRefusal(msg.err) {
			return m, nil
		}
		m.err = msg.err
		m.errContext = "importing project"
		return m, scheduleErrorClear()
	}
	m = m.syncRows()
	m.table = m.table.SelectByPath(msg.path)
	m.toast = m.toast.Show("Imported "+msg.name, toaster.StyleSuccess)

	cmds := []tea.Cmd{toaster.ScheduleDismiss(2 * time.Second)}
	if m.icons != nil {
		cmds = append(cmds, m.loadIconCmd(msg.path, msg.iconPath))
	}
	return m, tea.Batch(cmds...)
}

// handleRescanDone processes engine rescan results.
func (m Model) handleRescanDone(msg rescanDoneMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.errContext = "refreshing engines"
		return m, scheduleErrorClear()
	}
	m = m.syncRows()
	m.toast = m.toast.Show("Engines refreshed", toaster.StyleSuccess)
	return m, toaster.ScheduleDismiss(2 * time.Second)
}
