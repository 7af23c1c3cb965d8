package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tote/internal/lists"
	"github.com/five82/tote/internal/shopping"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptNewList
	promptRenameList
	promptDescription
	promptShare
	promptNewItem
	promptRenameItem
)

// prompt is a single-line text input bound to one list or item.
type prompt struct {
	kind   promptKind
	listID shopping.ID
	itemID shopping.ID
}

func (p prompt) active() bool { return p.kind != promptNone }

func (p prompt) title() string {
	switch p.kind {
	case promptNewList:
		return "New list"
	case promptRenameList:
		return "Rename list"
	case promptDescription:
		return "List description"
	case promptShare:
		return "Share with Telegram user"
	case promptNewItem:
		return "Add item"
	case promptRenameItem:
		return "Rename item"
	}
	return ""
}

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDeleteList
	confirmDeleteItem
	confirmRemoveShare
)

// confirmation asks y/n before a destructive operation.
type confirmation struct {
	kind   confirmKind
	listID shopping.ID
	itemID shopping.ID
	userID int64
	label  string
}

func (c confirmation) active() bool { return c.kind != confirmNone }

func (c confirmation) question() string {
	switch c.kind {
	case confirmDeleteList:
		return fmt.Sprintf("Delete list %q and all its items?", c.label)
	case confirmDeleteItem:
		return fmt.Sprintf("Delete %q?", c.label)
	case confirmRemoveShare:
		return fmt.Sprintf("Remove access for %s?", c.label)
	}
	return ""
}

// openPrompt focuses the input with an optional initial value.
func (m *Model) openPrompt(p prompt, value, placeholder string) tea.Cmd {
	m.prompt = p
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.prompt = prompt{}
	m.input.Blur()
	m.input.Reset()
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		p, value := m.prompt, m.input.Value()
		m.closePrompt()
		return m, m.submitPrompt(p, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitPrompt turns the entered text into a manager call. Validation is
// left to the manager so blank names surface the same error everywhere.
func (m Model) submitPrompt(p prompt, value string) tea.Cmd {
	mgr := m.manager
	switch p.kind {
	case promptNewList:
		return m.run(lists.OpCreateList, func(ctx context.Context) (string, error) {
			l, err := mgr.CreateList(ctx, value)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Created %q", l.Name), nil
		})
	case promptRenameList:
		return m.run(lists.OpUpdateList, func(ctx context.Context) (string, error) {
			return "", mgr.UpdateList(ctx, p.listID, shopping.ListPatch{Name: shopping.Ptr(value)})
		})
	case promptDescription:
		return m.run(lists.OpUpdateList, func(ctx context.Context) (string, error) {
			desc := strings.TrimSpace(value)
			return "", mgr.UpdateList(ctx, p.listID, shopping.ListPatch{Description: &desc})
		})
	case promptShare:
		return m.run(lists.OpShareList, func(ctx context.Context) (string, error) {
			res, err := mgr.ShareList(ctx, p.listID, value)
			if err != nil {
				return "", err
			}
			if _, err := mgr.FetchShares(ctx, p.listID); err != nil {
				return "", err
			}
			notice := "Shared with @" + strings.TrimPrefix(strings.TrimSpace(value), "@")
			if res.ShareURL != "" {
				notice += "  " + res.ShareURL
			}
			return notice, nil
		})
	case promptNewItem:
		return m.run(lists.OpCreateItem, func(ctx context.Context) (string, error) {
			_, err := mgr.CreateItem(ctx, p.listID, value)
			return "", err
		})
	case promptRenameItem:
		return m.run(lists.OpUpdateItem, func(ctx context.Context) (string, error) {
			return "", mgr.UpdateItem(ctx, p.listID, p.itemID, shopping.ItemPatch{Name: shopping.Ptr(value)})
		})
	}
	return nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Yes), key.Matches(msg, m.keys.Confirm):
		c := m.confirm
		m.confirm = confirmation{}
		return m, m.submitConfirm(c)
	case key.Matches(msg, m.keys.No):
		m.confirm = confirmation{}
	}
	return m, nil
}

func (m Model) submitConfirm(c confirmation) tea.Cmd {
	mgr := m.manager
	switch c.kind {
	case confirmDeleteList:
		return m.run(lists.OpDeleteList, func(ctx context.Context) (string, error) {
			if err := mgr.DeleteList(ctx, c.listID); err != nil {
				return "", err
			}
			return fmt.Sprintf("Deleted %q", c.label), nil
		})
	case confirmDeleteItem:
		return m.run(lists.OpDeleteItem, func(ctx context.Context) (string, error) {
			return "", mgr.DeleteItem(ctx, c.listID, c.itemID)
		})
	case confirmRemoveShare:
		return m.run(lists.OpRemoveShare, func(ctx context.Context) (string, error) {
			if err := mgr.RemoveShare(ctx, c.listID, c.userID); err != nil {
				return "", err
			}
			return "Removed access for " + c.label, nil
		})
	}
	return nil
}

// renderPrompt draws the active prompt or confirmation as a bordered box.
func (m Model) renderPrompt() string {
	styles := m.theme.Styles()
	var body string
	switch {
	case m.prompt.active():
		body = styles.AccentText.Bold(true).Render(m.prompt.title()) + "\n" +
			m.input.View() + "\n" +
			styles.FaintText.Render("enter to save, esc to cancel")
	case m.confirm.active():
		body = styles.WarningText.Bold(true).Render(m.confirm.question()) + "\n" +
			styles.FaintText.Render("y to confirm, n to cancel")
	default:
		return ""
	}

	width := 50
	if m.width > 0 && m.width-4 < width {
		width = m.width - 4
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(0, 1).
		Width(width).
		Render(body)
}
