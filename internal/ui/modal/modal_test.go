package modal

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNew_InputMode(t *testing.T) {
	cfg := Config{
		Title: "Import Project",
		Inputs: []InputConfig{
			{Key: "path", Label: "Path", Placeholder: "Enter project path..."},
		},
	}

	m := New(cfg)

	if !m.hasInputs {
		t.Error("expected hasInputs to be true when Inputs is set")
	}
	if len(m.inputs) != 1 {
		t.Errorf("expected 1 input, got %d", len(m.inputs))
	}
	if m.inputs[0].Placeholder != cfg.Inputs[0].Placeholder {
		t.Errorf("expected placeholder %q, got %q", cfg.Inputs[0].Placeholder, m.inputs[0].Placeholder)
	}
}

func TestNew_ConfirmMode(t *testing.T) {
	cfg := Config{
		Title:   "Remove Project",
		Message: "Are you sure?",
		// No Inputs = confirmation mode
	}

	m := New(cfg)

	if m.hasInputs {
		t.Error("expected hasInputs to be false when Inputs is empty")
	}
	if m.focusedInput != -1 {
		t.Errorf("expected focusedInput -1 for confirm mode, got %d", m.focusedInput)
	}
	if m.focusedField != FieldSave {
		t.Errorf("expected focusedField FieldSave for confirm mode, got %d", m.focusedField)
	}
}

func TestNew_WithInitialValue(t *testing.T) {
	cfg := Config{
		Title: "Edit Arguments",
		Inputs: []InputConfig{
			{Key: "args", Label: "Arguments", Placeholder: "Launch arguments...", Value: "--fullscreen"},
		},
	}

	m := New(cfg)

	if m.inputs[0].Value() != cfg.Inputs[0].Value {
		t.Errorf("expected initial value %q, got %q", cfg.Inputs[0].Value, m.inputs[0].Value())
	}
}

func TestNew_WithMaxLength(t *testing.T) {
	cfg := Config{
		Title: "Short Input",
		Inputs: []InputConfig{
			{Key: "name", Label: "Name", Placeholder: "Enter...", MaxLength: 10},
		},
	}

	m := New(cfg)

	if m.inputs[0].CharLimit != cfg.Inputs[0].MaxLength {
		t.Errorf("expected CharLimit %d, got %d", cfg.Inputs[0].MaxLength, m.inputs[0].CharLimit)
	}
}

func TestInit_InputMode(t *testing.T) {
	m := New(Config{
		Title: "Import Project",
		Inputs: []InputConfig{
			{Key: "path", Label: "Path", Placeholder: "Enter..."},
		},
	})

	cmd := m.Init()
	if cmd == nil {
		t.Error("expected Init() to return textinput.Blink command for input mode")
	}
}

func TestInit_ConfirmMode(t *testing.T) {
	m := New(Config{
		Title: "Confirm",
	})

	cmd := m.Init()
	if cmd != nil {
		t.Error("expected Init() to return nil for confirmation mode")
	}
}

func TestUpdate_Submit(t *testing.T) {
	m := New(Config{
		Title: "Import Project",
		Inputs: []InputConfig{
			{Key: "path", Label: "Path", Placeholder: "Enter...", Value: "/srv/games/platformer"},
		},
	})

	// Navigate to Save button
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focusedInput != -1 || m.focusedField != FieldSave {
		t.Fatalf("expected focus on Save button, got input=%d field=%d", m.focusedInput, m.focusedField)
	}

	// Press enter on Save
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("expected command from Enter key on Save")
	}

	msg := cmd()
	submitMsg, ok := msg.(SubmitMsg)
	if !ok {
		t.Fatalf("expected SubmitMsg, got %T", msg)
	}
	if submitMsg.Values["path"] != "/srv/games/platformer" {
		t.Errorf("expected value %q, got %q", "/srv/games/platformer", submitMsg.Values["path"])
	}
}

func TestUpdate_Cancel(t *testing.T) {
	m := New(Config{
		Title: "Import Project",
		Inputs: []InputConfig{
			{Key: "path", Label: "Path", Placeholder: "Enter..."},
		},
	})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})

	if cmd == nil {
		t.Fatal("expected command from Esc key")
	}

	msg := cmd()
	if _, ok := msg.(CancelMsg); !ok {
		t.Fatalf("expected CancelMsg, got %T", msg)
	}
}

func TestUpdate_CancelButton(t *testing.T) {
	m := New(Config{
		Title: "Import Project",
		Inputs: []InputConfig{
			{Key: "path", Label: "Path", Placeholder: "Enter..."},
		},
	})

	// Navigate to Cancel button (tab to Save, then right to Cancel)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})

	if m.focusedField != FieldCancel {
		t.Fatalf("expected focus on Cancel, got %d", m.focusedField)
	}

	// Press enter on Cancel
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("expected command from Enter on Cancel")
	}

	msg := cmd()
	if _, ok := msg.(CancelMsg); !ok {
		t.Fatalf("expected CancelMsg, got %T", msg)
	}
}

func TestUpdate_EmptySubmit(t *testing.T) {
	// In input mode, Save with empty input should NOT submit
	m := New(Config{
		Title: "Import Project",
		Inputs: []InputConfig{
			{Key: "path", Label: "Path", Placeholder: "Enter..."},
		},
	})

	// Navigate to Save button
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	// Press enter - should not submit because input is empty
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		msg := cmd()
		if _, ok := msg.(SubmitMsg); ok {
			t.Error("expected no SubmitMsg when input is empty in input mode")
		}
	}
}

func TestUpdate_EmptySubmitAllowed(t *testing.T) {
	// AllowEmpty inputs submit even when blank, so launch arguments can
	// be cleared from the edit modal.
	m := New(Config{
		Title: "Edit Arguments",
		Inputs: []InputConfig{
			{Key: "args", Label: "Arguments", Placeholder: "Launch arguments...", AllowEmpty: true},
		},
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("expected SubmitMsg command for AllowEmpty input")
	}
	msg := cmd()
	submitMsg, ok := msg.(SubmitMsg)
	if !ok {
		t.Fatalf("expected SubmitMsg, got %T", msg)
	}
	if submitMsg.Values["args"] != "" {
		t.Errorf("expected empty args value, got %q", submitMsg.Values["args"])
	}
}

func TestUpdate_ConfirmSubmit(t *testing.T) {
	// In confirmation mode, Enter submits immediately (no input required)
	m := New(Config{
		Title:   "Remove Project",
		Message: "Are you sure?",
	})

	// Should start on Save button
	if m.focusedInput != -1 || m.focusedField != FieldSave {
		t.Fatalf("expected focus on Save, got input=%d field=%d", m.focusedInput, m.focusedField)
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("expected command from Enter key in confirmation mode")
	}

	msg := cmd()
	submitMsg, ok := msg.(SubmitMsg)
	if !ok {
		t.Fatalf("expected SubmitMsg, got %T", msg)
	}
	if len(submitMsg.Values) != 0 {
		t.Errorf("expected empty values for confirmation mode, got %v", submitMsg.Values)
	}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	m := New(Config{
		Title: "Test",
	})

	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	if m.width != 100 {
		t.Errorf("expected width 100, got %d", m.width)
	}
	if m.height != 50 {
		t.Errorf("expected height 50, got %d", m.height)
	}
}

func TestUpdate_Navigation(t *testing.T) {
	m := New(Config{
		Title: "Test",
		Inputs: []InputConfig{
			{Key: "first", Label: "First", Placeholder: "First..."},
			{Key: "second", Label: "Second", Placeholder: "Second..."},
		},
	})

	// Should start on first input
	if m.focusedInput != 0 {
		t.Errorf("expected focusedInput 0, got %d", m.focusedInput)
	}

	// Tab to second input
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focusedInput != 1 {
		t.Errorf("expected focusedInput 1 after tab, got %d", m.focusedInput)
	}

	// Tab to Save button
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focusedInput != -1 || m.focusedField != FieldSave {
		t.Errorf("expected Save button focus, got input=%d field=%d", m.focusedInput, m.focusedField)
	}

	// Tab to Cancel button
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focusedField != FieldCancel {
		t.Errorf("expected Cancel button focus, got %d", m.focusedField)
	}

	// Tab wraps to first input
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focusedInput != 0 {
		t.Errorf("expected wrap to first input, got %d", m.focusedInput)
	}
}

func TestUpdate_NavigationReverse(t *testing.T) {
	m := New(Config{
		Title: "Test",
		Inputs: []InputConfig{
			{Key: "path", Label: "Path", Placeholder: "Path..."},
		},
	})

	// Start on input, shift+tab should go to Cancel
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focusedField != FieldCancel {
		t.Errorf("expected Cancel from shift+tab, got %d", m.focusedField)
	}

	// Shift+tab to Save
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focusedField != FieldSave {
		t.Errorf("expected Save from shift+tab, got %d", m.focusedField)
	}

	// Shift+tab wraps to input
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focusedInput != 0 {
		t.Errorf("expected wrap to input, got %d", m.focusedInput)
	}
}

func TestUpdate_HorizontalNavigation(t *testing.T) {
	m := New(Config{
		Title: "Test",
	})

	// Confirm mode starts on Save
	if m.focusedField != FieldSave {
		t.Fatalf("expected Save focus, got %d", m.focusedField)
	}

	// Right to Cancel
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.focusedField != FieldCancel {
		t.Errorf("expected Cancel after right, got %d", m.focusedField)
	}

	// Left back to Save
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.focusedField != FieldSave {
		t.Errorf("expected Save after left, got %d", m.focusedField)
	}
}

func TestView_InputMode(t *testing.T) {
	m := New(Config{
		Title: "Import Project",
		Inputs: []InputConfig{
			{Key: "path", Label: "Project Path", Placeholder: "Enter project path..."},
		},
	})

	view := m.View()

	if !strings.Contains(view, "Import Project") {
		t.Error("expected view to contain title")
	}
	if !strings.Contains(view, "Project Path") {
		t.Error("expected view to contain input label")
	}
	if !strings.Contains(view, "Save") {
		t.Error("expected view to contain 'Save' button")
	}
	if !strings.Contains(view, "Cancel") {
		t.Error("expected view to contain 'Cancel' button")
	}
}

func TestView_ConfirmMode(t *testing.T) {
	m := New(Config{
		Title:   "Remove Project",
		Message: "Are you sure you want to remove?",
	})

	view := m.View()

	if !strings.Contains(view, "Remove Project") {
		t.Error("expected view to contain title")
	}
	if !strings.Contains(view, "Are you sure") {
		t.Error("expected view to contain message")
	}
	if !strings.Contains(view, "Confirm") {
		t.Error("expected view to contain 'Confirm' button")
	}
	if !strings.Contains(view, "Cancel") {
		t.Error("expected view to contain 'Cancel' button")
	}
}

func TestSetSize(t *testing.T) {
	m := New(Config{Title: "Test"})

	m.SetSize(200, 100)

	if m.width != 200 {
		t.Errorf("expected width 200, got %d", m.width)
	}
	if m.height != 100 {
		t.Errorf("expected height 100, got %d", m.height)
	}
}

func TestOverlay(t *testing.T) {
	m := New(Config{
		Title: "Test Modal",
	})
	m.SetSize(80, 24)

	// Create a simple background
	var bg strings.Builder
	for i := 0; i < 24; i++ {
		bg.WriteString(strings.Repeat(".", 80))
		if i < 23 {
			bg.WriteString("\n")
		}
	}

	result := m.Overlay(bg.String())

	if !strings.Contains(result, "Test Modal") {
		t.Error("expected overlay to contain modal content")
	}
	if !strings.Contains(result, "...") {
		t.Error("expected overlay to preserve some background")
	}
}
