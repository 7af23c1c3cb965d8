package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tote/internal/logtail"
)

const (
	activityHeight = 8
	activityLines  = 200
)

// readActivityCmd tails the client's own log file for the activity pane.
func readActivityCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, activityLines)
		if err != nil {
			return activityMsg([]logtail.Entry{{Level: "ERROR", Message: err.Error()}})
		}
		return activityMsg(logtail.ParseLines(lines))
	}
}

func (m *Model) updateActivityViewport() {
	if !m.ready {
		return
	}
	styles := m.theme.Styles()
	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.formatEntry(e, styles))
	}
	m.activity.SetContent(b.String())
	m.activity.GotoBottom()
}

func (m Model) formatEntry(e logtail.Entry, styles Styles) string {
	if e.Raw {
		return styles.FaintText.Render(truncate(e.Message, m.activity.Width))
	}
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(styles.FaintText.Render(e.Time.Local().Format("15:04:05")))
		b.WriteString(" ")
	}
	b.WriteString(styles.LevelStyle(e.Level).Render(padRight(e.Level, 5)))
	b.WriteString(" ")
	if e.Logger != "" {
		b.WriteString(styles.MutedText.Render(e.Logger + ":"))
		b.WriteString(" ")
	}
	b.WriteString(styles.Text.Render(e.Message))
	for _, key := range []string{"operation", "list_id", "item_id", "status", "error"} {
		if v, ok := e.Field(key); ok {
			b.WriteString(styles.FaintText.Render(" " + key + "=" + v))
		}
	}
	return b.String()
}

func (m Model) renderActivity() string {
	styles := m.theme.Styles()
	title := styles.MutedText.Render("Activity")
	if m.logPath != "" {
		title += styles.FaintText.Render("  " + truncateMiddle(m.logPath, m.width-16))
	}
	body := m.activity.View()
	if len(m.entries) == 0 {
		body = styles.FaintText.Render("Nothing logged yet.")
	}
	return styles.Pane.Width(m.width - 2).Render(title + "\n" + body)
}
