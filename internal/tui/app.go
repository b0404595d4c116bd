package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jask/exprtable/internal/config"
	"github.com/jask/exprtable/internal/expression"
	"github.com/jask/exprtable/internal/prefs"
	"github.com/jask/exprtable/internal/session"
)

// Store is the backing store of the expression list.
type Store interface {
	List(ctx context.Context) ([]expression.Expression, error)
	Add(ctx context.Context, e expression.Expression) error
	Update(ctx context.Context, e expression.Expression) error
	Remove(ctx context.Context, e expression.Expression) error
}

// App ties together the add form, the expression table and the status line.
type App struct {
	ctx     context.Context
	store   Store
	cfg     config.Config
	labels  prefs.Labels
	sink    *storeSink
	ctrl    *session.Controller
	table   *Table
	form    textinput.Model
	formErr string
	status  string
	keys    appKeys
}

func New(ctx context.Context, cfg config.Config, store Store, labels prefs.Labels) *App {
	sink := &storeSink{ctx: ctx, store: store}
	ctrl := session.New(sink, session.WithTeardownDelay(cfg.Edit.TeardownDelay))

	form := textinput.New()
	form.Placeholder = "example.com"
	form.Prompt = labels.AddExpression + ": "
	form.CharLimit = 512
	form.Width = 40

	return &App{
		ctx:    ctx,
		store:  store,
		cfg:    cfg,
		labels: labels,
		sink:   sink,
		ctrl:   ctrl,
		table: NewTable(ctrl, sink, TableConfig{
			ColumnTitle: cfg.UI.ColumnTitle,
			Empty:       emptyStyle.Render(cfg.UI.EmptyText),
			Labels:      labels,
		}),
		form: form,
		keys: defaultAppKeys(),
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadExpressions()
}

func (a *App) loadExpressions() tea.Cmd {
	return func() tea.Msg {
		list, err := a.store.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return exprListMsg(list)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.table.SetWidth(m.Width)
		a.form.Width = max(m.Width-len(a.form.Prompt)-4, 10)
	case tea.KeyMsg:
		if key.Matches(m, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		if a.form.Focused() {
			cmd = a.handleFormKey(m)
			break
		}
		if !a.table.Focused() {
			switch {
			case key.Matches(m, a.keys.Quit):
				return a, tea.Quit
			case key.Matches(m, a.keys.Add), key.Matches(m, a.keys.Switch):
				return a, a.focusForm()
			}
		} else if key.Matches(m, a.keys.Switch) {
			return a, a.focusForm()
		}
		cmd = a.table.Update(m, false)
	case exprListMsg:
		cmd = a.table.SetRecords([]expression.Expression(m), a.form.Focused())
	case storeWrittenMsg:
		if m.err != nil {
			a.status = "error: " + m.err.Error()
		} else {
			a.status = m.summary()
		}
		cmd = a.loadExpressions()
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	default:
		var formCmd tea.Cmd
		if a.form.Focused() {
			a.form, formCmd = a.form.Update(msg)
		}
		cmd = tea.Batch(formCmd, a.table.Update(msg, a.form.Focused()))
	}
	return a, tea.Batch(cmd, a.sink.Drain())
}

func (a *App) focusForm() tea.Cmd {
	a.table.Blur()
	return a.form.Focus()
}

func (a *App) handleFormKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Leave), key.Matches(m, a.keys.Switch):
		a.form.Blur()
		a.formErr = ""
		a.ctrl.RequestFocus()
		return a.table.Refresh(false)
	case key.Matches(m, a.keys.Submit):
		return a.submitForm()
	}
	var cmd tea.Cmd
	a.form, cmd = a.form.Update(m)
	a.formErr = ""
	return cmd
}

func (a *App) submitForm() tea.Cmd {
	text := strings.TrimSpace(a.form.Value())
	if msg := expression.ValidateDomain(text); msg != "" {
		a.formErr = msg
		return nil
	}
	a.formErr = ""
	a.form.SetValue("")
	e := expression.Expression{
		ID:         uuid.NewString(),
		StoreID:    a.cfg.Store.ID,
		Expression: text,
		ListType:   expression.ParseListType(a.cfg.UI.DefaultListType),
	}
	return func() tea.Msg {
		return storeWrittenMsg{op: opAdd, expr: e, err: a.store.Add(a.ctx, e)}
	}
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Expressions (%s)", a.cfg.Store.ID)))
	b.WriteString("\n")
	b.WriteString(a.form.View())
	if a.formErr != "" {
		b.WriteString("\n" + errorStyle.Render(a.formErr))
	}
	b.WriteString("\n\n")
	b.WriteString(a.table.View())
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(a.help()))
	if a.status != "" {
		b.WriteString("\n" + statusStyle.Render(a.status))
	}
	return b.String()
}

func (a *App) help() string {
	l := a.labels
	parts := []string{
		"[a] " + l.AddExpression,
		"[e] " + l.EditExpression,
		"[ctrl+s] " + l.SaveExpression,
		"[esc] " + l.StopEditing,
		"[d] " + l.RemoveExpression,
		"[t] " + l.ListType,
		"[tab] switch focus",
		"[q] quit",
	}
	return strings.Join(parts, "  ")
}

// storeSink turns session commands into store writes. Writes queue up while
// a message is handled and run in issue order afterwards.
type storeSink struct {
	ctx   context.Context
	store Store
	queue []tea.Cmd
}

func (s *storeSink) Update(e expression.Expression) {
	s.queue = append(s.queue, s.write(opUpdate, e, s.store.Update))
}

func (s *storeSink) Remove(e expression.Expression) {
	s.queue = append(s.queue, s.write(opRemove, e, s.store.Remove))
}

func (s *storeSink) write(op string, e expression.Expression, fn func(context.Context, expression.Expression) error) tea.Cmd {
	return func() tea.Msg {
		return storeWrittenMsg{op: op, expr: e, err: fn(s.ctx, e)}
	}
}

// Drain returns the queued writes as one ordered command.
func (s *storeSink) Drain() tea.Cmd {
	if len(s.queue) == 0 {
		return nil
	}
	q := s.queue
	s.queue = nil
	return tea.Sequence(q...)
}

// messages
type exprListMsg []expression.Expression

type statusMsg string

type errMsg struct{ error }

const (
	opAdd    = "add"
	opUpdate = "update"
	opRemove = "remove"
)

type storeWrittenMsg struct {
	op   string
	expr expression.Expression
	err  error
}

func (m storeWrittenMsg) summary() string {
	switch m.op {
	case opAdd:
		return "added " + m.expr.Expression
	case opRemove:
		return "removed " + m.expr.Expression
	default:
		return "saved " + m.expr.Expression
	}
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg(text) }
}
