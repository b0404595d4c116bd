package tui

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/exprtable/internal/config"
	"github.com/jask/exprtable/internal/expression"
	"github.com/jask/exprtable/internal/prefs"
)

type memStore struct {
	list []expression.Expression
	ops  []string
}

func (s *memStore) List(context.Context) ([]expression.Expression, error) {
	return append([]expression.Expression(nil), s.list...), nil
}

func (s *memStore) Add(_ context.Context, e expression.Expression) error {
	s.ops = append(s.ops, opAdd+" "+e.Expression)
	s.list = append(s.list, e)
	return nil
}

func (s *memStore) Update(_ context.Context, e expression.Expression) error {
	s.ops = append(s.ops, opUpdate+" "+e.Expression)
	for i := range s.list {
		if s.list[i].ID == e.ID {
			s.list[i] = e
		}
	}
	return nil
}

func (s *memStore) Remove(_ context.Context, e expression.Expression) error {
	s.ops = append(s.ops, opRemove+" "+e.Expression)
	for i := range s.list {
		if s.list[i].ID == e.ID {
			s.list = append(s.list[:i], s.list[i+1:]...)
			break
		}
	}
	return nil
}

func testConfig() config.Config {
	var cfg config.Config
	cfg.Store.ID = "default"
	cfg.UI.ColumnTitle = "Expression"
	cfg.UI.EmptyText = "No expressions yet."
	cfg.UI.DefaultListType = "GREY"
	cfg.Edit.TeardownDelay = time.Millisecond
	return cfg
}

var cmdType = reflect.TypeOf(tea.Cmd(nil))

// runCmd executes cmd, expanding batches and sequences, and returns the
// resulting messages in order.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}
	v := reflect.ValueOf(msg)
	if v.Kind() == reflect.Slice && v.Type().Elem() == cmdType {
		var out []tea.Msg
		for i := 0; i < v.Len(); i++ {
			out = append(out, runCmd(v.Index(i).Interface().(tea.Cmd))...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func newTestApp(t *testing.T, list []expression.Expression) (*App, *memStore) {
	t.Helper()
	store := &memStore{list: list}
	app := New(context.Background(), testConfig(), store, prefs.DefaultLabels())
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	feed(app, runCmd(app.Init()))
	return app, store
}

// feed delivers messages and returns any store results and reloads they cause.
func feed(app *App, msgs []tea.Msg) {
	for _, msg := range msgs {
		_, cmd := app.Update(msg)
		for _, next := range runCmd(cmd) {
			switch next.(type) {
			case exprListMsg, storeWrittenMsg:
				feed(app, []tea.Msg{next})
			}
		}
	}
}

func press(app *App, msgs ...tea.KeyMsg) tea.Cmd {
	var cmds []tea.Cmd
	for _, m := range msgs {
		_, cmd := app.Update(m)
		cmds = append(cmds, cmd)
	}
	return cmds[len(cmds)-1]
}

func TestAppEmptyState(t *testing.T) {
	app, _ := newTestApp(t, nil)
	view := app.View()
	if !strings.Contains(view, "No expressions yet.") {
		t.Fatalf("missing placeholder:\n%s", view)
	}
	if strings.Contains(view, prefs.DefaultLabels().Options) {
		t.Fatalf("table header rendered for empty list:\n%s", view)
	}
}

func TestAppEditCommitWritesStore(t *testing.T) {
	app, store := newTestApp(t, []expression.Expression{
		{ID: "1", StoreID: "default", Expression: "example.com", ListType: expression.ListWhite},
	})

	press(app, runes("e"), clearLine, runes("example.org"))
	cmd := press(app, enter)

	msgs := runCmd(cmd)
	feed(app, msgs)

	if len(store.ops) != 1 || store.ops[0] != "update example.org" {
		t.Fatalf("store ops = %v", store.ops)
	}
	if got := store.list[0]; got.ListType != expression.ListWhite || got.StoreID != "default" {
		t.Fatalf("other fields changed: %+v", got)
	}
	if app.ctrl.State().Active {
		t.Fatal("session should be torn down")
	}
	if app.status != "saved example.org" {
		t.Fatalf("status = %q", app.status)
	}
	if !strings.Contains(app.View(), "example.org") {
		t.Fatal("reloaded value should be displayed")
	}
}

func TestAppInvalidEditWritesNothing(t *testing.T) {
	app, store := newTestApp(t, []expression.Expression{
		{ID: "1", Expression: "example.com", ListType: expression.ListGrey},
	})
	press(app, runes("e"), clearLine, runes("a b"))
	feed(app, runCmd(press(app, enter)))

	if len(store.ops) != 0 {
		t.Fatalf("store ops = %v", store.ops)
	}
	st := app.ctrl.State()
	if !st.Active || !st.Invalid {
		t.Fatalf("state = %+v", st)
	}
	if !strings.Contains(app.View(), st.Error) {
		t.Fatal("feedback should be rendered")
	}
}

func TestAppRemoveAndToggleOrder(t *testing.T) {
	app, store := newTestApp(t, []expression.Expression{
		{ID: "1", Expression: "a.example", ListType: expression.ListGrey},
		{ID: "2", Expression: "b.example", ListType: expression.ListGrey},
	})
	feed(app, runCmd(press(app, runes("t"))))
	feed(app, runCmd(press(app, runes("j"), runes("d"))))

	want := []string{"update a.example", "remove b.example"}
	if !reflect.DeepEqual(store.ops, want) {
		t.Fatalf("ops = %v, want %v", store.ops, want)
	}
	if len(store.list) != 1 || store.list[0].ListType != expression.ListWhite {
		t.Fatalf("list = %+v", store.list)
	}
}

func TestStoreSinkDrainKeepsOrder(t *testing.T) {
	store := &memStore{list: []expression.Expression{{ID: "1", Expression: "x.example"}}}
	sink := &storeSink{ctx: context.Background(), store: store}
	e := store.list[0]
	sink.Update(e)
	sink.Remove(e)

	msgs := runCmd(sink.Drain())
	if len(msgs) != 2 {
		t.Fatalf("msgs = %v", msgs)
	}
	if !reflect.DeepEqual(store.ops, []string{"update x.example", "remove x.example"}) {
		t.Fatalf("ops = %v", store.ops)
	}
	if sink.Drain() != nil {
		t.Fatal("queue should be empty after drain")
	}
}

func TestAppAddForm(t *testing.T) {
	app, store := newTestApp(t, nil)
	press(app, runes("a"))
	if !app.form.Focused() {
		t.Fatal("a should focus the add form")
	}

	press(app, runes("bad value"))
	feed(app, runCmd(press(app, enter)))
	if app.formErr == "" || len(store.ops) != 0 {
		t.Fatalf("invalid add accepted: err=%q ops=%v", app.formErr, store.ops)
	}

	app.form.SetValue("")
	press(app, runes("new.example"))
	feed(app, runCmd(press(app, enter)))
	if len(store.list) != 1 {
		t.Fatalf("list = %+v", store.list)
	}
	got := store.list[0]
	if got.Expression != "new.example" || got.ListType != expression.ListGrey || got.StoreID != "default" || got.ID == "" {
		t.Fatalf("added = %+v", got)
	}
}

func TestAppFormKeepsFocusDuringReload(t *testing.T) {
	list := []expression.Expression{{ID: "1", Expression: "example.com", ListType: expression.ListGrey}}
	app, _ := newTestApp(t, list)

	press(app, runes("a"))
	press(app, runes("e"))
	if app.ctrl.State().Active {
		t.Fatal("typing in the form must not start an edit")
	}

	app.ctrl.StartEdit(list[0])
	app.Update(exprListMsg(list))
	if app.table.Focused() || !app.form.Focused() {
		t.Fatal("row editor stole focus from the add form")
	}

	press(app, esc)
	if app.form.Focused() || !app.table.Focused() {
		t.Fatal("leaving the form should hand focus to the open editor")
	}
}

func TestAppQuit(t *testing.T) {
	app, _ := newTestApp(t, nil)
	cmd := press(app, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should quit when no input has focus")
	}
}
