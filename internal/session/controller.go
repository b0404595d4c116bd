// Package session holds the single-record edit state shared by the
// expression table and its row editors.
//
// At most one record is edited at a time. Rows never own edit state; they
// compare their own id against State.TargetID.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/exprtable/internal/expression"
)

// DefaultTeardownDelay is how long a committed session stays open while the
// store's update comes back into the rendered collection.
const DefaultTeardownDelay = 200 * time.Millisecond

var (
	ErrIdle          = errors.New("session: no edit in progress")
	ErrInvalid       = errors.New("session: invalid expression")
	ErrTargetMissing = errors.New("session: edited expression no longer exists")
)

// Sink receives store commands. Calls are fire-and-forget.
type Sink interface {
	Update(expression.Expression)
	Remove(expression.Expression)
}

// Validator returns a user-facing message for bad input, or "".
type Validator func(string) string

// State is a snapshot of the edit session.
type State struct {
	Active   bool
	TargetID string
	Buffer   string
	Error    string
	Invalid  bool
}

// TeardownMsg is delivered once the post-commit delay has elapsed.
type TeardownMsg struct{}

type Controller struct {
	sink         Sink
	validate     Validator
	delay        time.Duration
	state        State
	focusPending bool
}

type Option func(*Controller)

// WithTeardownDelay overrides DefaultTeardownDelay. Non-positive values are ignored.
func WithTeardownDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.delay = d
		}
	}
}

func WithValidator(v Validator) Option {
	return func(c *Controller) {
		if v != nil {
			c.validate = v
		}
	}
}

func New(sink Sink, opts ...Option) *Controller {
	c := &Controller{
		sink:     sink,
		validate: expression.ValidateDomain,
		delay:    DefaultTeardownDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State { return c.state }

// Editing reports whether id is the record under edit.
func (c *Controller) Editing(id string) bool {
	return c.state.Active && c.state.TargetID == id
}

// StartEdit opens a session on e, replacing any session already open.
func (c *Controller) StartEdit(e expression.Expression) {
	c.state = State{
		Active:   true,
		TargetID: e.ID,
		Buffer:   e.Expression,
	}
	c.focusPending = true
}

func (c *Controller) ChangeBuffer(text string) {
	if !c.state.Active {
		return
	}
	c.state.Buffer = text
}

// Validate checks the trimmed buffer and updates the error and invalid marking.
func (c *Controller) Validate() bool {
	if !c.state.Active {
		return false
	}
	if msg := strings.TrimSpace(c.validate(strings.TrimSpace(c.state.Buffer))); msg != "" {
		c.state.Error = msg
		c.state.Invalid = true
		return false
	}
	c.state.Error = ""
	c.state.Invalid = false
	return true
}

// Commit validates the buffer and emits an update for the target found in
// records, carrying the trimmed buffer and every other field unchanged. The
// update is emitted before the returned teardown command is created. When the target has disappeared nothing is emitted and
// ErrTargetMissing is returned together with the teardown command.
func (c *Controller) Commit(records []expression.Expression) (tea.Cmd, error) {
	if !c.state.Active {
		return nil, ErrIdle
	}
	if !c.Validate() {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, c.state.Error)
	}
	var err error
	if original, ok := expression.Find(records, c.state.TargetID); ok {
		updated := original
		updated.Expression = strings.TrimSpace(c.state.Buffer)
		c.sink.Update(updated)
	} else {
		err = ErrTargetMissing
	}
	return c.scheduleTeardown(), err
}

func (c *Controller) scheduleTeardown() tea.Cmd {
	return tea.Tick(c.delay, func(time.Time) tea.Msg { return TeardownMsg{} })
}

// Teardown resets to idle. The scheduled teardown is never cancelled, so it
// also closes a session started after the commit.
func (c *Controller) Teardown() {
	c.state = State{}
	c.focusPending = false
}

// Cancel discards the session immediately without emitting anything.
func (c *Controller) Cancel() {
	c.state = State{}
	c.focusPending = false
}

// Remove emits a remove command for e regardless of the session.
func (c *Controller) Remove(e expression.Expression) {
	c.sink.Remove(e)
}

// RequestFocus asks for the editor to be focused on the next render.
func (c *Controller) RequestFocus() {
	if c.state.Active {
		c.focusPending = true
	}
}

// TakeFocus consumes a pending focus request. It grants focus only when a
// session is open and no other input holds focus; a refused request is
// dropped rather than retried.
func (c *Controller) TakeFocus(heldElsewhere bool) bool {
	if !c.focusPending {
		return false
	}
	c.focusPending = false
	return c.state.Active && !heldElsewhere
}
