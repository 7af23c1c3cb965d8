package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tote/internal/lists"
	"github.com/five82/tote/internal/prefs"
	"github.com/five82/tote/internal/shopping"
)

// visibleItems applies the hide-completed filter.
func (m Model) visibleItems(l shopping.List) []shopping.Item {
	if !m.hideCompleted {
		return l.Items
	}
	out := make([]shopping.Item, 0, len(l.Items))
	for _, item := range l.Items {
		if !item.Completed {
			out = append(out, item)
		}
	}
	return out
}

// handleItemsKey processes keyboard input for a single list.
func (m Model) handleItemsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l, _ := m.activeList()
	items := m.visibleItems(l)

	switch {
	case key.Matches(msg, m.keys.Back):
		m.selection.Clear()
		m.pane = paneItems
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		if m.pane == paneItems && l.IsOwner && len(l.Shares) > 0 {
			m.pane = paneShares
		} else {
			m.pane = paneItems
		}
		return m, nil
	case key.Matches(msg, m.keys.HideCompleted):
		m.hideCompleted = !m.hideCompleted
		m.itemRow = clampRow(m.itemRow, len(m.visibleItems(l)))
		hide := m.hideCompleted
		_ = prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.HideCompleted = hide })
		return m, nil
	case key.Matches(msg, m.keys.Share):
		return m, m.openPrompt(prompt{kind: promptShare, listID: l.ID}, "", "@username")
	}

	if m.pane == paneShares {
		return m.handleSharesKey(msg, l)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.itemRow > 0 {
			m.itemRow--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.itemRow < len(items)-1 {
			m.itemRow++
		}
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.itemRow = 0
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.itemRow = clampRow(len(items)-1, len(items))
		return m, nil
	case key.Matches(msg, m.keys.New):
		return m, m.openPrompt(prompt{kind: promptNewItem, listID: l.ID}, "", "Milk")
	}

	if len(items) == 0 {
		return m, nil
	}
	item := items[clampRow(m.itemRow, len(items))]

	switch {
	case key.Matches(msg, m.keys.Toggle):
		mgr := m.manager
		return m, m.run(lists.OpToggleItem, func(ctx context.Context) (string, error) {
			return "", mgr.ToggleItem(ctx, l.ID, item.ID)
		})
	case key.Matches(msg, m.keys.Rename):
		return m, m.openPrompt(prompt{kind: promptRenameItem, listID: l.ID, itemID: item.ID}, item.Name, "")
	case key.Matches(msg, m.keys.Delete):
		m.confirm = confirmation{kind: confirmDeleteItem, listID: l.ID, itemID: item.ID, label: item.Name}
		return m, nil
	}
	return m, nil
}

func (m Model) handleSharesKey(msg tea.KeyMsg, l shopping.List) (tea.Model, tea.Cmd) {
	n := len(l.Shares)
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.shareRow > 0 {
			m.shareRow--
		}
	case key.Matches(msg, m.keys.Down):
		if m.shareRow < n-1 {
			m.shareRow++
		}
	case key.Matches(msg, m.keys.Delete):
		if n == 0 {
			return m, nil
		}
		sh := l.Shares[clampRow(m.shareRow, n)]
		m.confirm = confirmation{
			kind:   confirmRemoveShare,
			listID: l.ID,
			userID: sh.SharedWithUserID,
			label:  sh.DisplayName(),
		}
	}
	return m, nil
}

// renderItems renders the active list: title, items and, for owners, the
// people it is shared with.
func (m Model) renderItems(height int) string {
	styles := m.theme.Styles()
	l, _ := m.activeList()

	var b strings.Builder
	title := styles.AccentText.Bold(true).Render(l.Name)
	if l.IsDefault {
		title += styles.WarningText.Render("  * default")
	}
	done, total := l.Progress()
	title += styles.MutedText.Render(fmt.Sprintf("  %d of %d done", done, total))
	if m.hideCompleted {
		title += styles.FaintText.Render("  (completed hidden)")
	}
	b.WriteString(title)
	b.WriteString("\n")
	if l.Description != "" {
		b.WriteString(styles.MutedText.Render(truncate(l.Description, m.width-4)))
		b.WriteString("\n")
		height--
	}
	height--

	shareLines := 0
	if l.IsOwner && len(l.Shares) > 0 {
		shareLines = len(l.Shares) + 2
		if shareLines > height/2 {
			shareLines = height / 2
		}
	}

	b.WriteString(m.renderItemRows(l, height-shareLines))
	if shareLines > 0 {
		b.WriteString("\n\n")
		b.WriteString(m.renderShares(l, shareLines-1))
	}
	return b.String()
}

func (m Model) renderItemRows(l shopping.List, height int) string {
	styles := m.theme.Styles()
	items := m.visibleItems(l)
	if len(items) == 0 {
		switch {
		case !l.ItemsLoaded && l.TotalItems > 0:
			return styles.MutedText.Render("Loading items...")
		case len(l.Items) > 0:
			return styles.MutedText.Render("Everything is checked off.")
		default:
			return styles.MutedText.Render("No items yet. Press n to add one.")
		}
	}

	focused := m.pane == paneItems
	start := scrollStart(m.itemRow, len(items), height)
	var rows []string
	for i := start; i < len(items) && len(rows) < height; i++ {
		item := items[i]
		box := "[ ]"
		if item.Completed {
			box = "[x]"
		}
		line := box + " " + truncate(item.Name, m.width-10)
		switch {
		case focused && i == m.itemRow:
			line = styles.Selected.Width(m.width - 2).Render(line)
		case item.ID.Pending():
			line = styles.FaintText.Render(line)
		case item.Completed:
			line = styles.MutedText.Strikethrough(true).Render(line)
		default:
			line = styles.Text.Render(line)
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderShares(l shopping.List, height int) string {
	styles := m.theme.Styles()
	var rows []string
	rows = append(rows, styles.InfoText.Bold(true).Render(fmt.Sprintf("Shared with %d", len(l.Shares))))
	focused := m.pane == paneShares
	for i, sh := range l.Shares {
		if len(rows) >= height {
			break
		}
		line := "  " + sh.DisplayName()
		if focused && i == m.shareRow {
			line = styles.Selected.Width(m.width - 2).Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}
