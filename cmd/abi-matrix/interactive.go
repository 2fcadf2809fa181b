package main

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/castcheck/matrix"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	caseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// visibleRows is how many cases the selection list shows at once.
const visibleRows = 16

type modelState int

const (
	stateSelectCase modelState = iota
	stateInputValue
	stateShowResult
)

type interactiveModel struct {
	err      error
	result   *matrix.Case
	cases    []matrix.Case
	input    textinput.Model
	selected int
	state    modelState
}

func newInteractiveModel(cases []matrix.Case) *interactiveModel {
	return &interactiveModel{
		cases: cases,
		state: stateSelectCase,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputValue {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectCase && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectCase && m.selected < len(m.cases)-1 {
				m.selected++
			}

		case "pgdown":
			if m.state == stateSelectCase {
				m.selected = min(m.selected+visibleRows, len(m.cases)-1)
			}

		case "pgup":
			if m.state == stateSelectCase {
				m.selected = max(m.selected-visibleRows, 0)
			}

		case "enter":
			switch m.state {
			case stateSelectCase:
				m.prepareInput()
				m.state = stateInputValue
				return m, textinput.Blink

			case stateInputValue:
				m.evaluate()
				m.state = stateShowResult
				return m, nil

			case stateShowResult:
				m.state = stateSelectCase
				m.result = nil
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateInputValue, stateShowResult:
				m.state = stateSelectCase
				m.result = nil
				m.err = nil
			}
		}
	}

	if m.state == stateInputValue {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) prepareInput() {
	c := m.cases[m.selected]
	ti := textinput.New()
	ti.Placeholder = c.Source.Literal
	ti.Prompt = c.Source.Name + " value: "
	ti.Width = 40
	ti.Focus()
	m.input = ti
}

// evaluate converts the entered value, or the sample when the field is empty.
func (m *interactiveModel) evaluate() {
	c := m.cases[m.selected]
	text := strings.TrimSpace(m.input.Value())
	if text != "" {
		v, ok := parseLiteral(text)
		if !ok {
			m.err = fmt.Errorf("cannot parse %q as an integer", text)
			return
		}
		c = c.WithValue(v)
	}
	m.result = &c
}

// parseLiteral accepts decimal, 0x, 0o and 0b literals with an optional sign
// and C suffixes (u, l, ul, ull).
func parseLiteral(s string) (*big.Int, bool) {
	s = strings.TrimRight(s, "uUlL")
	return new(big.Int).SetString(s, 0)
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ABI Cast Matrix"))
	b.WriteString(fmt.Sprintf(" %d cases\n\n", len(m.cases)))

	switch m.state {
	case stateSelectCase:
		b.WriteString("Select a cast:\n\n")
		start := max(0, min(m.selected-visibleRows/2, len(m.cases)-visibleRows))
		end := min(start+visibleRows, len(m.cases))
		for i := start; i < end; i++ {
			line := m.formatCase(m.cases[i])
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • pgup/pgdn page • enter evaluate • q quit"))

	case stateInputValue:
		c := m.cases[m.selected]
		b.WriteString(fmt.Sprintf("Casting %s\n\n", caseStyle.Render(c.Name())))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("empty uses the sample value • enter evaluate • esc back"))

	case stateShowResult:
		c := m.cases[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", caseStyle.Render(c.Name())))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			r := m.result
			b.WriteString(fmt.Sprintf("  (%s)%s\n", typeStyle.Render(witTypeStr(r.Dest.Wit())), r.Value))
			b.WriteString(fmt.Sprintf("  value: %s\n", resultStyle.Render(r.Result().String())))
			b.WriteString(fmt.Sprintf("  bytes: %s", resultStyle.Render(r.HexBytes())))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatCase(c matrix.Case) string {
	return fmt.Sprintf("%-20s %s -> %s  %s",
		caseStyle.Render(c.Name()),
		typeStyle.Render(witTypeStr(c.Source.Wit())),
		typeStyle.Render(witTypeStr(c.Dest.Wit())),
		c.HexBytes())
}

func witTypeStr(t wit.Type) string {
	switch t.(type) {
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	default:
		return fmt.Sprintf("%T", t)
	}
}

func runInteractive(cases []matrix.Case) error {
	p := tea.NewProgram(newInteractiveModel(cases), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
