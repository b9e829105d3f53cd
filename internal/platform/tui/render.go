package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridiron/internal/flow"
	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/outcome"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
	hudStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	possessionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// renderHUD draws the scoreboard box: both scores, period and clock, and the
// down and distance.
func renderHUD(s game.State, human game.Side, cpuTitle string, width int) string {
	name := func(side game.Side) string {
		label := side.String()
		if side == human {
			label += " (you)"
		} else {
			label += " (" + cpuTitle + ")"
		}
		if side == s.Possession && !s.GameOver {
			return possessionStyle.Render("> " + label)
		}
		return "  " + label
	}

	scores := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s  %d", name(game.Home), s.Score.Home),
		fmt.Sprintf("%s  %d", name(game.Away), s.Score.Away),
	)
	situation := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s  %s", periodLabel(s.Quarter), game.FormatClock(s.Clock)),
		downLine(s),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, scores, "    ", situation)
	box := hudStyle.Render(body)
	if width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
	}
	return box
}

func periodLabel(q int) string {
	if q > 4 {
		return "OT"
	}
	return "Q" + fmt.Sprint(q)
}

func downLine(s game.State) string {
	switch {
	case s.GameOver:
		return "FINAL"
	case s.AwaitingPAT:
		return "Try"
	}
	line := fmt.Sprintf("%s & %d at %s", game.Ordinal(s.Down), s.ToGo, game.FieldPosition(s.BallOn))
	if s.ToGo >= s.YardsToGoal() {
		line = fmt.Sprintf("%s & goal at %s", game.Ordinal(s.Down), game.FieldPosition(s.BallOn))
	}
	if s.UntimedDown {
		line += "  (untimed)"
	}
	return line
}

// renderChoices draws a scrolling list with the cursor row highlighted.
func renderChoices(items []string, cursor, height int) string {
	if len(items) == 0 {
		return ""
	}
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := min(len(items), start+height)

	var b strings.Builder
	for i := start; i < end; i++ {
		if i == cursor {
			b.WriteString(cursorStyle.Render("> " + items[i]))
		} else {
			b.WriteString("  " + items[i])
		}
		b.WriteString("\n")
	}
	if end < len(items) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", len(items)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderLog draws the most recent play-by-play lines.
func renderLog(lines []string, height, width int) string {
	start := max(0, len(lines)-height)
	var b strings.Builder
	for _, line := range lines[start:] {
		if width > 4 && len(line) > width-2 {
			line = line[:width-5] + "..."
		}
		b.WriteString(dimStyle.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func penaltyPrompt(p flow.PendingPenalty) string {
	side := "offense"
	if p.Result.Meta.On == outcome.AgainstDefense {
		side = "defense"
	}
	acc, dec := p.Result.Accepted, p.Result.Declined
	return fmt.Sprintf("Flag on the %s, %d yards. Accept: %s & %d at %s. Decline: %s & %d at %s.",
		side, p.Result.Meta.Yards,
		game.Ordinal(acc.Down), acc.ToGo, game.FieldPosition(acc.BallOn),
		game.Ordinal(dec.Down), dec.ToGo, game.FieldPosition(dec.BallOn))
}

func finalLine(s game.State, human game.Side) string {
	margin := s.Score.Margin(human)
	switch {
	case margin > 0:
		return fmt.Sprintf("FINAL: you win %d-%d. Press enter to leave.", s.Score.Of(human), s.Score.Of(human.Other()))
	case margin < 0:
		return fmt.Sprintf("FINAL: you lose %d-%d. Press enter to leave.", s.Score.Of(human), s.Score.Of(human.Other()))
	default:
		return fmt.Sprintf("FINAL: tie %d-%d. Press enter to leave.", s.Score.Home, s.Score.Away)
	}
}
