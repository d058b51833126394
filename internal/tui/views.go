package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Veraticus/resetwatch/internal/cluster"
	"github.com/Veraticus/resetwatch/internal/tui/viewmodel"
)

const cursorGlyph = "▸"

// Column widths for a vendor row.
const (
	nameWidth    = 22
	zoneWidth    = 16
	councilWidth = 14
	timerWidth   = 18
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == StateForm {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.renderHeader(),
			"",
			m.form.view(m.theme),
			m.renderHelp(),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderPrompt(),
		m.renderStatus(),
		m.renderHelp(),
	)
}

// chromeHeight is the number of lines around the board viewport.
func (m Model) chromeHeight() int {
	return 4 + lipgloss.Height(m.renderHelp())
}

func (m Model) renderHeader() string {
	character := m.board.Character
	if character == "" {
		character = "no character"
	}
	title := m.theme.Title.Render("⏰ resetwatch") + "  " + m.theme.Subtitle.Render(character)

	summary := fmt.Sprintf("Council %s / %s   Next reset %s",
		m.board.TotalCouncil, m.board.TotalMaximum, m.board.NextReset)
	if m.board.Filter != "" && m.state != StateFilter {
		summary += fmt.Sprintf("   filter %q", m.board.Filter)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, m.theme.Normal.Render(summary))
}

// renderBoard draws every cluster as a box. Edge clusters carry a title and
// their own border color.
func (m Model) renderBoard() string {
	if m.board.Empty() {
		msg := "No vendors. Press a to add one."
		if m.board.Filter != "" {
			msg = fmt.Sprintf("No vendors match %q.", m.board.Filter)
		}
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render(msg)
	}

	boxes := make([]string, 0, len(m.board.Clusters))
	for _, c := range m.board.Clusters {
		lines := make([]string, 0, len(c.Names)+1)
		if title := edgeTitle(c.Edge); title != "" {
			lines = append(lines, m.theme.Bold.Foreground(m.theme.EdgeBorder(c.Edge)).Render(title))
		}
		for _, name := range c.Names {
			lines = append(lines, m.renderRow(m.board.Rows[name]))
		}
		box := m.theme.ClusterBox.
			BorderForeground(m.theme.EdgeBorder(c.Edge)).
			Render(strings.Join(lines, "\n"))
		boxes = append(boxes, box)
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}

func edgeTitle(edge cluster.Edge) string {
	switch edge {
	case cluster.EdgeEarliest:
		return "EARLIEST"
	case cluster.EdgeLatest:
		return "LATEST"
	default:
		return ""
	}
}

func (m Model) renderRow(row *viewmodel.VendorRow) string {
	marker := "  "
	if row.Name == m.selected {
		marker = cursorGlyph + " "
	}

	council := row.Council
	if row.Maximum != "" {
		council += " / " + row.Maximum
	}

	text := marker +
		column(row.Name, nameWidth) +
		column(row.Zone, zoneWidth) +
		column(council, councilWidth) +
		column(row.Countdown, timerWidth) +
		row.Categories

	switch {
	case row.Name == m.selected:
		return m.theme.Selected.Render(text)
	case row.Status == cluster.StatusExhausted:
		return m.theme.Exhausted.Render(text)
	case row.Status == cluster.StatusResetPending:
		return m.theme.Pending.Render(text)
	default:
		return m.theme.Normal.Render(text)
	}
}

// column truncates or pads s to width cells plus a separating space.
func column(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width) + " "
}

// renderPrompt shows whatever single-line input or question is active.
func (m Model) renderPrompt() string {
	switch m.state {
	case StateFilter:
		return m.filter.View()
	case StateNewCharacter:
		return m.nameInput.View()
	case StateConfirm:
		verb := "Reset"
		if m.pending.kind == actionDelete {
			verb = "Delete"
		}
		return m.theme.Bold.Render(fmt.Sprintf("%s %s? [y/N]", verb, m.pending.vendor))
	default:
		return ""
	}
}

func (m Model) renderStatus() string {
	if text := m.errorText(); text != "" {
		return m.theme.StatusError.Render(text)
	}
	if m.status != "" {
		return m.theme.StatusInfo.Render(m.status)
	}
	return ""
}

func (m Model) renderHelp() string {
	if !m.config.ShowHelp {
		return ""
	}
	if m.state == StateForm || m.state == StateFilter || m.state == StateNewCharacter {
		return m.help.View(m.formKeys)
	}
	return m.help.View(m.keymap)
}
