package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"helpboard/app/board"
	"helpboard/app/models"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Width(60)
	closedCardStyle = cardStyle.
			BorderForeground(lipgloss.Color("240")).
			Foreground(lipgloss.Color("245"))
	tagStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	actionStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
)

// Terminal renders posts as boxed cards for the command line. It follows the
// same contract as the HTML cards: label, relative time, fields, closed
// marker and the actions the post's state allows.
func Terminal(posts []models.Post, now time.Time) string {
	if len(posts) == 0 {
		return dimStyle.Render("No posts yet.")
	}
	cards := make([]string, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, terminalCard(p, now))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func terminalCard(p models.Post, now time.Time) string {
	header := fmt.Sprintf("%s  %s  %s",
		tagStyle.Render(p.CategoryLabel),
		dimStyle.Render(board.FormatTimestamp(p.Timestamp, now)),
		dimStyle.Render(fmt.Sprintf("#%d", p.ID)),
	)

	actions := []string{"close", "edit", "delete"}
	style := cardStyle
	if p.Closed {
		header += "  " + dimStyle.Render("[Closed]")
		actions = []string{"delete"}
		style = closedCardStyle
	}

	body := strings.Join([]string{
		header,
		titleStyle.Render(p.Name),
		p.Description,
		"Contact: " + p.Contact,
		actionStyle.Render("actions: " + strings.Join(actions, ", ")),
	}, "\n")
	return style.Render(body)
}

// TerminalStats renders the dashboard counters on one line.
func TerminalStats(s board.Stats) string {
	return statsStyle.Render(fmt.Sprintf(
		"Active: %d  Closed: %d  Helped: %d  Community: %d",
		s.Active, s.Closed, s.Helped, s.Community,
	))
}
