package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderMain stacks header, error bar, content, overlays and footer.
func (m Model) renderMain() string {
	header := m.renderHeader()
	errBar := m.renderErrorBar()
	footer := m.renderFooter()
	overlay := m.renderPrompt()

	var activity string
	if m.showActivity {
		activity = m.renderActivity()
	}

	used := lipgloss.Height(header) + lipgloss.Height(footer)
	for _, part := range []string{errBar, overlay, activity} {
		if part != "" {
			used += lipgloss.Height(part)
		}
	}
	contentHeight := m.height - used - 1
	if contentHeight < 3 {
		contentHeight = 3
	}

	var content string
	if m.CurrentView() == ViewItems {
		content = m.renderItems(contentHeight)
	} else {
		content = m.renderLists(contentHeight)
	}
	content = lipgloss.NewStyle().Height(contentHeight).Padding(0, 1).Render(content)

	parts := []string{header}
	if errBar != "" {
		parts = append(parts, errBar)
	}
	parts = append(parts, content)
	if overlay != "" {
		parts = append(parts, overlay)
	}
	if activity != "" {
		parts = append(parts, activity)
	}
	parts = append(parts, footer)
	return strings.Join(parts, "\n")
}

// renderHeader renders the top status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bar := lipgloss.NewStyle().Background(lipgloss.Color(m.theme.Surface))
	sep := bar.Render("  ")

	parts := []string{styles.Logo.Render("tote")}

	count := len(m.snapshot.Lists)
	parts = append(parts, bar.Inherit(styles.MutedText).Render("Lists:")+bar.Render(" ")+
		bar.Inherit(styles.Text).Render(fmt.Sprintf("%d", count)))

	if l, ok := m.activeList(); ok {
		parts = append(parts, bar.Inherit(styles.AccentText).Render(truncate(l.Name, 30)))
	}

	switch {
	case m.snapshot.Loading:
		parts = append(parts, bar.Inherit(styles.WarningText).Render("syncing..."))
	case m.manager.InFlight() > 0:
		parts = append(parts, bar.Inherit(styles.WarningText).Render(fmt.Sprintf("saving %d...", m.manager.InFlight())))
	case m.snapshot.Error != "":
		parts = append(parts, bar.Inherit(styles.DangerText).Render("● error"))
	default:
		parts = append(parts, bar.Inherit(styles.SuccessText).Render("● synced"))
	}

	if m.width >= 80 && m.apiURL != "" {
		parts = append(parts, bar.Inherit(styles.FaintText).Render(truncateMiddle(m.apiURL, 40)))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderErrorBar shows State.Error until it is dismissed or cleared by a
// successful fetch.
func (m Model) renderErrorBar() string {
	styles := m.theme.Styles()
	if m.snapshot.Error != "" {
		return styles.ErrorBar.Width(m.width).Render(truncate(m.snapshot.Error, m.width-22) + "  (x to dismiss)")
	}
	if m.notice == "" {
		return ""
	}
	style := styles.SuccessText
	if m.noticeLevel == noticeWarn {
		style = styles.WarningText
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(style.Render(truncate(m.notice, m.width-2)))
}

// renderFooter renders context-sensitive key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bindings := m.keys.listsHelp()
	if m.CurrentView() == ViewItems {
		bindings = m.keys.itemsHelp(m.pane == paneShares)
	}
	return styles.Footer.Width(m.width).Render(m.help.ShortHelpView(bindings))
}
