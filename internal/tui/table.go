package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/exprtable/internal/expression"
	"github.com/jask/exprtable/internal/field"
	"github.com/jask/exprtable/internal/prefs"
	"github.com/jask/exprtable/internal/session"
)

const (
	colMarker  = 2
	colRemove  = 12
	colOptions = 32
	colList    = 24
	minExprCol = 24
)

// TableConfig holds the caller-supplied pieces of the table.
type TableConfig struct {
	ColumnTitle string
	// Empty is rendered verbatim in place of the table when there are no records.
	Empty  string
	Labels prefs.Labels
}

// Table renders one row per expression and routes row gestures into the
// edit session controller.
type Table struct {
	cfg     TableConfig
	ctrl    *session.Controller
	sink    session.Sink
	records []expression.Expression
	fields  map[string]*field.Model
	cursor  int
	width   int
	keys    tableKeys
}

func NewTable(ctrl *session.Controller, sink session.Sink, cfg TableConfig) *Table {
	return &Table{
		cfg:    cfg,
		ctrl:   ctrl,
		sink:   sink,
		fields: map[string]*field.Model{},
		keys:   defaultTableKeys(),
	}
}

// SetRecords replaces the rendered collection, keeping the caller's order.
func (t *Table) SetRecords(list []expression.Expression, formFocused bool) tea.Cmd {
	t.records = list
	fields := make(map[string]*field.Model, len(list))
	for _, e := range list {
		if f, ok := t.fields[e.ID]; ok {
			fields[e.ID] = f
			continue
		}
		f := field.New()
		f.SetWidth(t.exprWidth())
		fields[e.ID] = &f
	}
	t.fields = fields
	if t.cursor >= len(t.records) {
		t.cursor = max(len(t.records)-1, 0)
	}
	return t.sync(formFocused)
}

func (t *Table) Records() []expression.Expression { return t.records }

func (t *Table) Cursor() int { return t.cursor }

func (t *Table) SetWidth(w int) {
	t.width = w
	for _, f := range t.fields {
		f.SetWidth(t.exprWidth())
	}
}

func (t *Table) exprWidth() int {
	w := t.width - colMarker - colRemove - colOptions - colList
	if w < minExprCol {
		return minExprCol
	}
	return w
}

// Focused reports whether the row editor holds input focus.
func (t *Table) Focused() bool {
	if f := t.editingField(); f != nil {
		return f.Focused()
	}
	return false
}

// Blur takes focus away from the row editor without ending the session.
func (t *Table) Blur() {
	if f := t.editingField(); f != nil {
		f.Blur()
	}
}

func (t *Table) editingField() *field.Model {
	st := t.ctrl.State()
	if !st.Active {
		return nil
	}
	return t.fields[st.TargetID]
}

// Update handles a message. formFocused tells the table another input holds
// focus, so a pending focus request must not take it.
func (t *Table) Update(msg tea.Msg, formFocused bool) tea.Cmd {
	var cmd tea.Cmd
	switch m := msg.(type) {
	case session.TeardownMsg:
		t.ctrl.Teardown()
	case tea.KeyMsg:
		cmd = t.handleKey(m)
	default:
		if f := t.editingField(); f != nil {
			cmd = f.Update(msg)
		}
	}
	return tea.Batch(cmd, t.sync(formFocused))
}

func (t *Table) handleKey(m tea.KeyMsg) tea.Cmd {
	if f := t.editingField(); f != nil && f.Focused() {
		return f.Update(m)
	}
	if len(t.records) == 0 {
		return nil
	}
	rec := t.records[t.cursor]
	switch {
	case key.Matches(m, t.keys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
		return nil
	case key.Matches(m, t.keys.Down):
		if t.cursor < len(t.records)-1 {
			t.cursor++
		}
		return nil
	case key.Matches(m, t.keys.Remove):
		t.ctrl.Remove(rec)
		return nil
	case key.Matches(m, t.keys.Toggle):
		toggled := rec
		toggled.ListType = rec.ListType.Toggle()
		t.sink.Update(toggled)
		return nil
	}
	if f, ok := t.fields[rec.ID]; ok {
		return f.Update(m)
	}
	return nil
}

func (t *Table) handlers(rec expression.Expression) field.Handlers {
	return field.Handlers{
		OnChange: func(v string) tea.Cmd {
			t.ctrl.ChangeBuffer(v)
			return nil
		},
		OnStart: func() tea.Cmd {
			t.ctrl.StartEdit(rec)
			return nil
		},
		OnSave: t.save,
		OnClear: func() tea.Cmd {
			t.ctrl.Cancel()
			return nil
		},
	}
}

func (t *Table) save() tea.Cmd {
	cmd, err := t.ctrl.Commit(t.records)
	switch {
	case errors.Is(err, session.ErrTargetMissing):
		return tea.Batch(cmd, statusCmd(t.cfg.Labels.ExpressionGone))
	case err != nil:
		// invalid input stays in the editor with its feedback
		return nil
	}
	return cmd
}

// Refresh re-renders rows from the controller state.
func (t *Table) Refresh(formFocused bool) tea.Cmd { return t.sync(formFocused) }

// sync pushes controller state into every row's field.
func (t *Table) sync(formFocused bool) tea.Cmd {
	st := t.ctrl.State()
	labels := field.Labels{
		Start: t.cfg.Labels.EditExpression,
		Save:  t.cfg.Labels.SaveExpression,
		Clear: t.cfg.Labels.StopEditing,
	}
	var cmds []tea.Cmd
	for i, rec := range t.records {
		f := t.fields[rec.ID]
		props := field.Props{
			CanEdit:  t.ctrl.Editing(rec.ID),
			Selected: i == t.cursor,
			Value:    rec.Expression,
			Labels:   labels,
			Handlers: t.handlers(rec),
		}
		if props.CanEdit {
			props.EditValue = st.Buffer
			if st.Invalid {
				props.InvalidFeedback = st.Error
			}
			props.AutoFocus = t.ctrl.TakeFocus(formFocused)
		}
		cmds = append(cmds, f.SetProps(props))
	}
	return tea.Batch(cmds...)
}

func (t *Table) View() string {
	if len(t.records) == 0 {
		return t.cfg.Empty
	}
	exprW := t.exprWidth()
	cell := func(w int) lipgloss.Style { return lipgloss.NewStyle().Width(w).PaddingRight(1) }

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		cell(colMarker).Render(""),
		cell(colRemove).Render(""),
		cell(exprW).Render(t.cfg.ColumnTitle),
		cell(colOptions).Render(t.cfg.Labels.Options),
		cell(colList).Render(t.cfg.Labels.ListType),
	)
	rows := []string{headerStyle.Render(header)}

	st := t.ctrl.State()
	for i, rec := range t.records {
		selected := i == t.cursor
		marker := " "
		if selected {
			marker = cursorStyle.Render("▶")
		}

		remove := removeStyle.Render("[✗]")
		if selected {
			remove += "\n" + mutedStyle.Render(t.cfg.Labels.RemoveExpression+" ["+t.keys.Remove.Help().Key+"]")
		}

		exprCell := t.fields[rec.ID].View()
		if t.ctrl.Editing(rec.ID) {
			if similar := expression.Similar(t.records, rec.ID, st.Buffer); len(similar) > 0 {
				exprCell += "\n" + hintStyle.Render(t.cfg.Labels.SimilarTo+": "+strings.Join(similar, ", "))
			}
		}

		list := t.cfg.Labels.GreyListWord
		toggle := t.cfg.Labels.ToggleToWhite
		if rec.ListType == expression.ListWhite {
			list = t.cfg.Labels.WhiteListWord
			toggle = t.cfg.Labels.ToggleToGrey
		}
		if selected {
			list += "\n" + mutedStyle.Render("⇄ "+toggle+" ["+t.keys.Toggle.Help().Key+"]")
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			cell(colMarker).Render(marker),
			cell(colRemove).Render(remove),
			cell(exprW).Render(exprCell),
			cell(colOptions).Render(rec.Options.Summary()),
			cell(colList).Render(list),
		))
	}
	return strings.Join(rows, "\n")
}
