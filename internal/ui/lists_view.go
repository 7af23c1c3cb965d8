package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tote/internal/lists"
	"github.com/five82/tote/internal/shopping"
)

func (m Model) selectedList() (shopping.List, bool) {
	if len(m.snapshot.Lists) == 0 {
		return shopping.List{}, false
	}
	return m.snapshot.Lists[clampRow(m.listRow, len(m.snapshot.Lists))], true
}

// handleListsKey processes keyboard input for the lists overview.
func (m Model) handleListsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.snapshot.Lists)

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.listRow > 0 {
			m.listRow--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.listRow < n-1 {
			m.listRow++
		}
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.listRow = 0
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.listRow = clampRow(n-1, n)
		return m, nil
	case key.Matches(msg, m.keys.New):
		return m, m.openPrompt(prompt{kind: promptNewList}, "", "Groceries")
	}

	l, ok := m.selectedList()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Open):
		if l.ID.Pending() {
			m.notice, m.noticeLevel = capitalize(shopping.ErrPending.Error()), noticeWarn
			return m, nil
		}
		m.itemRow, m.shareRow, m.pane = 0, 0, paneItems
		m.selection.Select(l.ID)
		return m, m.openListCmd(l.ID)
	case key.Matches(msg, m.keys.Rename):
		return m, m.openPrompt(prompt{kind: promptRenameList, listID: l.ID}, l.Name, "")
	case key.Matches(msg, m.keys.Describe):
		return m, m.openPrompt(prompt{kind: promptDescription, listID: l.ID}, l.Description, "optional")
	case key.Matches(msg, m.keys.Delete):
		m.confirm = confirmation{kind: confirmDeleteList, listID: l.ID, label: l.Name}
		return m, nil
	case key.Matches(msg, m.keys.ToggleDefault):
		mgr := m.manager
		return m, m.run(lists.OpToggleDefault, func(ctx context.Context) (string, error) {
			return "", mgr.ToggleDefault(ctx, l.ID)
		})
	case key.Matches(msg, m.keys.Share):
		return m, m.openPrompt(prompt{kind: promptShare, listID: l.ID}, "", "@username")
	}
	return m, nil
}

// renderLists renders the overview of every list.
func (m Model) renderLists(height int) string {
	styles := m.theme.Styles()
	if len(m.snapshot.Lists) == 0 {
		msg := "No lists yet. Press n to create one."
		if m.snapshot.Loading {
			msg = "Loading lists..."
		}
		return styles.MutedText.Render(msg)
	}

	nameWidth := m.width - 30
	if nameWidth < 12 {
		nameWidth = 12
	}

	start := scrollStart(m.listRow, len(m.snapshot.Lists), height)
	var rows []string
	for i := start; i < len(m.snapshot.Lists) && len(rows) < height; i++ {
		l := m.snapshot.Lists[i]
		line := m.listRowText(l, nameWidth)
		if i == m.listRow {
			line = styles.Selected.Width(m.width - 2).Render(line)
		} else if l.ID.Pending() {
			line = styles.FaintText.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func (m Model) listRowText(l shopping.List, nameWidth int) string {
	marker := " "
	if l.IsDefault {
		marker = "*"
	}
	done, total := l.Progress()
	progress := fmt.Sprintf("%d/%d", done, total)

	var tags []string
	switch {
	case l.ID.Pending():
		tags = append(tags, "saving")
	case !l.IsOwner:
		tags = append(tags, "shared with you")
	case l.SharedWith > 0:
		tags = append(tags, fmt.Sprintf("shared %d", l.SharedWith))
	}

	return fmt.Sprintf("%s %-*s %7s  %s", marker, nameWidth, truncate(l.Name, nameWidth), progress, strings.Join(tags, " "))
}

// scrollStart keeps row visible inside a window of height rows.
func scrollStart(row, n, height int) int {
	if height <= 0 || n <= height {
		return 0
	}
	start := row - height + 1
	if start < 0 {
		start = 0
	}
	if start > n-height {
		start = n - height
	}
	return start
}
