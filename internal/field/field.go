// Package field renders one row's expression either read-only or as an
// editable input, and forwards user gestures to its handlers. It never
// decides what a gesture means.
package field

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/exprtable/internal/expression"
)

// Handlers receive forwarded gestures. Nil handlers are skipped.
type Handlers struct {
	OnChange func(value string) tea.Cmd
	OnStart  func() tea.Cmd
	OnSave   func() tea.Cmd
	OnClear  func() tea.Cmd
}

// Labels are button captions, passed through unchanged.
type Labels struct {
	Start string
	Save  string
	Clear string
}

type Props struct {
	CanEdit         bool
	Selected        bool
	AutoFocus       bool
	Value           string
	EditValue       string
	InvalidFeedback string
	Labels          Labels
	Handlers        Handlers
}

type KeyMap struct {
	Start     key.Binding
	Save      key.Binding
	Clear     key.Binding
	EnterSave key.Binding
	EscClear  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Clear:     key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "stop editing")),
		EnterSave: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		EscClear:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

var (
	colorMuted  lipgloss.Color = "#a6adc8"
	colorAccent lipgloss.Color = "#89b4fa"
	colorError  lipgloss.Color = "#f38ba8"
	colorOK     lipgloss.Color = "#a6e3a1"

	readOnlyStyle = lipgloss.NewStyle()
	startStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	editBoxStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorAccent).Padding(0, 1)
	invalidStyle  = editBoxStyle.BorderForeground(colorError)
	feedbackStyle = lipgloss.NewStyle().Foreground(colorError)
	clearStyle    = lipgloss.NewStyle().Foreground(colorError)
	saveStyle     = lipgloss.NewStyle().Foreground(colorOK)
)

type Model struct {
	props   Props
	input   textinput.Model
	keys    KeyMap
	mounted bool
	// last value handed to OnChange, so the controller echoing it back does
	// not reset the caret.
	emitted string
}

func New() Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 512
	ti.Width = 32
	return Model{input: ti, keys: DefaultKeyMap()}
}

func (m Model) Props() Props { return m.props }

// Focused reports whether the editable input holds focus.
func (m Model) Focused() bool { return m.mounted && m.input.Focused() }

// SetWidth sizes the input so the bordered editor fits in w columns.
func (m *Model) SetWidth(w int) {
	if w > 6 {
		m.input.Width = w - 6
	}
}

// SetProps applies new props. Entering edit mode mounts the input with the
// decoded buffer and the caret at the end; AutoFocus focuses it.
func (m *Model) SetProps(p Props) tea.Cmd {
	m.props = p
	if !p.CanEdit {
		if m.mounted {
			m.input.Blur()
			m.input.SetValue("")
			m.mounted = false
			m.emitted = ""
		}
		return nil
	}
	if !m.mounted {
		m.mounted = true
		m.input.SetValue(expression.Decode(p.EditValue))
		m.input.CursorEnd()
		m.emitted = p.EditValue
	} else if p.EditValue != m.emitted {
		m.input.SetValue(expression.Decode(p.EditValue))
		m.input.CursorEnd()
		m.emitted = p.EditValue
	}
	if p.AutoFocus {
		return m.Focus()
	}
	return nil
}

// Focus focuses the input with the caret at the end.
func (m *Model) Focus() tea.Cmd {
	if !m.mounted {
		return nil
	}
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) Blur() { m.input.Blur() }

// Update forwards a key gesture. Enter and esc act as save and cancel only
// while this field's own input has focus.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.Focused() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return cmd
		}
		return nil
	}
	h := m.props.Handlers
	if !m.props.CanEdit {
		if key.Matches(km, m.keys.Start) {
			return call(h.OnStart)
		}
		return nil
	}
	switch {
	case key.Matches(km, m.keys.Save):
		return call(h.OnSave)
	case key.Matches(km, m.keys.Clear):
		return call(h.OnClear)
	}
	if !m.input.Focused() {
		if key.Matches(km, m.keys.Start) {
			return m.Focus()
		}
		return nil
	}
	switch {
	case key.Matches(km, m.keys.EnterSave):
		return call(h.OnSave)
	case key.Matches(km, m.keys.EscClear):
		return call(h.OnClear)
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(km)
	if v := m.input.Value(); v != before && h.OnChange != nil {
		m.emitted = v
		return tea.Batch(cmd, h.OnChange(v))
	}
	return cmd
}

func call(fn func() tea.Cmd) tea.Cmd {
	if fn == nil {
		return nil
	}
	return fn()
}

func (m Model) View() string {
	p := m.props
	if !p.CanEdit {
		out := readOnlyStyle.Render(expression.Decode(p.Value))
		if p.Selected && p.Labels.Start != "" {
			out += "\n" + startStyle.Render("✎ "+p.Labels.Start+" ["+m.keys.Start.Help().Key+"]")
		}
		return out
	}
	lines := []string{m.input.View()}
	if p.InvalidFeedback != "" {
		lines = append(lines, feedbackStyle.Render(p.InvalidFeedback))
	}
	lines = append(lines,
		clearStyle.Render("⊘ "+p.Labels.Clear+" ["+m.keys.Clear.Help().Key+"]")+"  "+
			saveStyle.Render("✓ "+p.Labels.Save+" ["+m.keys.Save.Help().Key+"]"))
	box := editBoxStyle
	if p.InvalidFeedback != "" {
		box = invalidStyle
	}
	return box.Render(strings.Join(lines, "\n"))
}
