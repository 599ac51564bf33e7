package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"ndca/internal/ast"
	"ndca/internal/testkit"
)

func TestDebugger_RunToCompletion(t *testing.T) {
	fn := testkit.DemoTransition()
	ast.Flatten(fn)

	m, err := NewDebugger("demo", fn, testkit.DemoStateCount)
	if err != nil {
		t.Fatal(err)
	}
	m.Init()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(*DebuggerModel)

	if !m.finished {
		t.Fatal("run key should finish execution")
	}
	view := m.View()
	if !strings.Contains(view, "became #9") {
		t.Errorf("view should report the result, got:\n%s", view)
	}
}

func TestDebugger_SingleStepAdvancesPC(t *testing.T) {
	fn := testkit.DemoTransition()
	ast.Flatten(fn)

	m, err := NewDebugger("demo", fn, testkit.DemoStateCount)
	if err != nil {
		t.Fatal(err)
	}
	m.Init()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = updated.(*DebuggerModel)

	if m.state.PC != 1 {
		t.Errorf("pc = %d after one step, want 1", m.state.PC)
	}
	if m.steps != 1 {
		t.Errorf("steps = %d, want 1", m.steps)
	}
}
