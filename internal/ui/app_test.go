package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/five82/tote/internal/fakeapi"
	"github.com/five82/tote/internal/listapi"
	"github.com/five82/tote/internal/lists"
	"github.com/five82/tote/internal/prefs"
	"github.com/five82/tote/internal/shopping"
	"github.com/five82/tote/internal/state"
)

type uiHarness struct {
	srv       *fakeapi.Server
	mgr       *lists.Manager
	selection *state.Selection
	prefsPath string
}

func newUIHarness(t *testing.T) (*uiHarness, Model) {
	t.Helper()
	srv := fakeapi.New(fakeapi.Options{})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	client, err := listapi.NewClient(listapi.Options{BaseURL: ts.URL + "/api", InitData: "dev"})
	require.NoError(t, err)

	h := &uiHarness{
		srv:       srv,
		mgr:       lists.New(lists.Options{Store: state.NewStore(state.State{}, nil), API: client}),
		selection: &state.Selection{},
		prefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	}
	m := New(Options{Manager: h.mgr, Selection: h.selection, PrefsPath: h.prefsPath})
	t.Cleanup(m.Close)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return h, next.(Model)
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds keys to the model and returns the command of the last one.
func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyPress(k))
		m = next.(Model)
	}
	return m, cmd
}

// run executes cmd (and any batch it expands to), feeding results back into
// the model, then syncs the model with the store.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return syncModel(m)
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = run(t, m, c)
		}
	case opDoneMsg:
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return syncModel(m)
}

func syncModel(m Model) Model {
	next, _ := m.Update(changedMsg{})
	return next.(Model)
}

func TestCreateListThroughPrompt(t *testing.T) {
	h, m := newUIHarness(t)

	m, _ = press(m, "n")
	require.True(t, m.prompt.active())
	require.Contains(t, m.View(), "New list")

	m, cmd := press(m, "Groceries", "enter")
	require.False(t, m.prompt.active())
	m = run(t, m, cmd)

	st := h.mgr.Store().State()
	require.Len(t, st.Lists, 1)
	require.Equal(t, "Groceries", st.Lists[0].Name)
	require.False(t, st.Lists[0].ID.Pending())
	require.Contains(t, m.View(), "Groceries")
	require.Equal(t, `Created "Groceries"`, m.notice)
}

func TestEmptyNameShowsNotice(t *testing.T) {
	h, m := newUIHarness(t)

	m, cmd := press(m, "n", "   ", "enter")
	m = run(t, m, cmd)

	require.Empty(t, h.mgr.Store().State().Lists)
	require.Equal(t, "Name cannot be empty", m.notice)
	require.Equal(t, noticeWarn, m.noticeLevel)
	require.Zero(t, h.srv.Requests(), "validation must not reach the network")
}

func TestOpenIgnoresListStillSaving(t *testing.T) {
	h, m := newUIHarness(t)
	h.mgr.Store().Dispatch(state.AddList{List: shopping.List{ID: shopping.NextPendingID(), Name: "Party"}})
	m = syncModel(m)
	require.Contains(t, m.View(), "saving")

	m, cmd := press(m, "enter")
	require.Nil(t, cmd)
	require.Equal(t, ViewLists, m.CurrentView())
	require.Equal(t, shopping.ID(0), h.selection.Active())
	require.Equal(t, "Record is not confirmed by the server yet", m.notice)
	require.Zero(t, h.srv.Requests())
}

func TestOpenListAddAndToggleItem(t *testing.T) {
	h, m := newUIHarness(t)
	h.srv.SeedList(fakeapi.DefaultUserID, "Weekly", "Bread")
	require.NoError(t, h.mgr.RefreshLists(context.Background()))
	m = syncModel(m)

	m, cmd := press(m, "enter")
	require.Equal(t, ViewItems, m.CurrentView())
	m = run(t, m, cmd)
	require.Contains(t, m.View(), "[ ] Bread")

	m, cmd = press(m, "space")
	m = run(t, m, cmd)
	l, _ := m.activeList()
	require.True(t, l.Items[0].Completed)
	require.Contains(t, m.View(), "[x] Bread")

	m, cmd = press(m, "a", "Milk", "enter")
	m = run(t, m, cmd)
	l, _ = m.activeList()
	require.Len(t, l.Items, 2)
	require.Equal(t, "Milk", l.Items[1].Name)
	require.False(t, l.Items[1].ID.Pending())

	m, _ = press(m, "esc")
	require.Equal(t, ViewLists, m.CurrentView())
	require.Zero(t, h.selection.Active())
}

func TestFailedMutationShowsErrorUntilDismissed(t *testing.T) {
	h, m := newUIHarness(t)
	h.srv.Inject(fakeapi.Fault{Method: http.MethodPost, Route: "/lists", Status: http.StatusInternalServerError, Message: "database is down", Times: 1})

	m, cmd := press(m, "n", "Groceries", "enter")
	m = run(t, m, cmd)

	require.Empty(t, h.mgr.Store().State().Lists, "pending list must be rolled back")
	require.Contains(t, m.View(), "Failed to create list: database is down")

	m, _ = press(m, "x")
	m = syncModel(m)
	require.Empty(t, h.mgr.Store().State().Error)
	require.NotContains(t, m.View(), "database is down")
}

func TestDeleteListAsksFirst(t *testing.T) {
	h, m := newUIHarness(t)
	h.srv.SeedList(fakeapi.DefaultUserID, "Hardware")
	require.NoError(t, h.mgr.RefreshLists(context.Background()))
	m = syncModel(m)

	m, _ = press(m, "d")
	require.True(t, m.confirm.active())
	require.Contains(t, m.View(), `Delete list "Hardware"`)
	m, cmd := press(m, "n")
	require.Nil(t, cmd)
	require.Len(t, h.mgr.Store().State().Lists, 1)

	m, _ = press(m, "d")
	m, cmd = press(m, "y")
	m = run(t, m, cmd)
	require.Empty(t, h.mgr.Store().State().Lists)
	require.Equal(t, `Deleted "Hardware"`, m.notice)
}

func TestToggleDefaultMarksList(t *testing.T) {
	h, m := newUIHarness(t)
	h.srv.SeedList(fakeapi.DefaultUserID, "Hardware")
	h.srv.SeedList(fakeapi.DefaultUserID, "Weekly")
	require.NoError(t, h.mgr.RefreshLists(context.Background()))
	m = syncModel(m)

	m, cmd := press(m, "*")
	m = run(t, m, cmd)
	st := h.mgr.Store().State()
	require.Equal(t, st.Lists[0].ID, st.DefaultID())
	require.True(t, strings.HasPrefix(m.listRowText(st.Lists[0], 20), "*"))
	require.True(t, strings.HasPrefix(m.listRowText(st.Lists[1], 20), " "))
}

func TestShareAndRemoveAccess(t *testing.T) {
	h, m := newUIHarness(t)
	h.srv.SeedList(fakeapi.DefaultUserID, "Weekly", "Bread")
	require.NoError(t, h.mgr.RefreshLists(context.Background()))
	m = syncModel(m)

	m, cmd := press(m, "s", "@alice", "enter")
	m = run(t, m, cmd)
	require.True(t, strings.HasPrefix(m.notice, "Shared with @alice"))

	m, cmd = press(m, "enter")
	m = run(t, m, cmd)
	require.Contains(t, m.View(), "@alice")

	m, _ = press(m, "tab")
	require.Equal(t, paneShares, m.pane)
	m, _ = press(m, "d")
	require.Equal(t, confirmRemoveShare, m.confirm.kind)
	m, cmd = press(m, "y")
	m = run(t, m, cmd)

	l, _ := m.activeList()
	require.Empty(t, l.Shares)
	require.Equal(t, "Removed access for @alice", m.notice)
}

func TestHideCompletedPersists(t *testing.T) {
	h, m := newUIHarness(t)
	id := shopping.ID(h.srv.SeedList(fakeapi.DefaultUserID, "Weekly", "Bread", "Eggs"))
	require.NoError(t, h.mgr.RefreshLists(context.Background()))
	require.NoError(t, h.mgr.FetchListItems(context.Background(), id))
	l, _, _ := h.mgr.Store().State().Find(id)
	require.NoError(t, h.mgr.ToggleItem(context.Background(), id, l.Items[0].ID))
	h.selection.Select(id)
	m = syncModel(m)

	m, _ = press(m, "H")
	require.True(t, m.hideCompleted)
	require.NotContains(t, m.View(), "Bread")
	require.Contains(t, m.View(), "Eggs")

	p, err := prefs.Load(h.prefsPath)
	require.NoError(t, err)
	require.True(t, p.HideCompleted)
}

func TestHelpOverlayClosesOnAnyKey(t *testing.T) {
	_, m := newUIHarness(t)
	m, _ = press(m, "?")
	require.Contains(t, m.View(), "Keyboard Shortcuts")
	m, _ = press(m, "j")
	require.False(t, m.showHelp)
}
