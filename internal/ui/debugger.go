// Package ui renders the interactive rule debugger: a Bubble Tea model that
// single-steps the interpreter over a flattened transition function, showing
// the instruction listing with the program counter and the live variable
// table.
package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"ndca/internal/ast"
	"ndca/internal/interp"
	"ndca/internal/lang"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	pcStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	faultStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	borderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// DebuggerModel steps an interpreter state one instruction at a time.
type DebuggerModel struct {
	title string
	state *interp.State
	steps int

	listing  viewport.Model
	width    int
	height   int
	finished bool
	result   lang.Value
	fault    *lang.Error
}

// NewDebugger builds a debugger over a flattened transition function.
func NewDebugger(title string, fn *ast.Function, stateCount int) (*DebuggerModel, *lang.Error) {
	st, err := interp.New(fn, stateCount)
	if err != nil {
		return nil, err
	}
	vp := viewport.New(60, 20)
	return &DebuggerModel{title: title, state: st, listing: vp, width: 80, height: 24}, nil
}

// Init implements tea.Model.
func (m *DebuggerModel) Init() tea.Cmd {
	m.refreshListing()
	return nil
}

// Update implements tea.Model.
func (m *DebuggerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "s", " ", "enter":
			m.step()
		case "r":
			for !m.finished {
				m.step()
			}
		case "up", "k":
			m.listing.LineUp(1)
		case "down", "j":
			m.listing.LineDown(1)
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.height = msg.Height
			m.listing.Width = max(30, msg.Width/2)
			m.listing.Height = max(6, msg.Height-6)
		}
	}
	m.refreshListing()
	return m, nil
}

func (m *DebuggerModel) step() {
	if m.finished {
		return
	}
	res, err := m.state.Step()
	m.steps++
	if err != nil {
		m.finished = true
		m.fault = err
		return
	}
	if res.Done {
		m.finished = true
		m.result = res.Value
	}
}

func (m *DebuggerModel) refreshListing() {
	var b strings.Builder
	for i := range m.state.Instructions {
		line := fmt.Sprintf("%3d: %s", i, ast.StmtString(&m.state.Instructions[i].Inner))
		switch {
		case i == m.state.PC && !m.finished:
			b.WriteString(pcStyle.Render("▶ " + line))
		default:
			b.WriteString(dimStyle.Render("  ") + line)
		}
		b.WriteString("\n")
	}
	m.listing.SetContent(b.String())
}

// View implements tea.Model.
func (m *DebuggerModel) View() string {
	header := titleStyle.Render(fmt.Sprintf("%s — step %d", m.title, m.steps))

	left := borderStyle.Render(m.listing.View())
	right := borderStyle.Render(m.varsView())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := m.statusView()
	help := helpStyle.Render("s/space step · r run · j/k scroll · q quit")

	return strings.Join([]string{header, body, status, help}, "\n")
}

func (m *DebuggerModel) varsView() string {
	names := make([]string, 0, len(m.state.Vars))
	for name := range m.state.Vars {
		names = append(names, name)
	}
	sort.Strings(names)

	nameWidth := 8
	for _, name := range names {
		if w := runewidth.StringWidth(name); w > nameWidth {
			nameWidth = w
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("variables"))
	b.WriteString("\n")
	if len(names) == 0 {
		b.WriteString(dimStyle.Render("(none)"))
		return b.String()
	}
	for _, name := range names {
		v := m.state.Vars[name]
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			runewidth.FillRight(truncate(name, 16), nameWidth),
			dimStyle.Render(v.Type().String()),
			valueStyle.Render(v.String())))
	}
	return b.String()
}

func (m *DebuggerModel) statusView() string {
	switch {
	case m.fault != nil:
		return faultStyle.Render(fmt.Sprintf("fault %s: %s", m.fault.Code, m.fault.Message))
	case m.finished && m.result.Kind == lang.VKCellState:
		return doneStyle.Render(fmt.Sprintf("became %s", m.result))
	case m.finished:
		return doneStyle.Render("ended with no value")
	default:
		return dimStyle.Render(fmt.Sprintf("pc = %d", m.state.PC))
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}

// Run starts the debugger in the alternate screen.
func Run(title string, fn *ast.Function, stateCount int) error {
	model, err := NewDebugger(title, fn, stateCount)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := p.Run()
	return runErr
}
