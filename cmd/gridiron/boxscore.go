package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/gridiron/internal/flow"
	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/sim"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// quarterLine splits each side's points by period. The last column is
// overtime and is only shown when the game went there.
func quarterLine(scoring []flow.ScoreEvent) [2][5]int {
	var line [2][5]int
	for _, ev := range scoring {
		q := min(max(ev.Quarter, 1), 5)
		line[ev.Side][q-1] += ev.Points
	}
	return line
}

// renderBoxScore draws the line score and the scoring summary.
func renderBoxScore(sum sim.Summary, width int) string {
	line := quarterLine(sum.Scoring)
	periods := 4
	if sum.Overtime {
		periods = 5
	}

	headers := []string{"Team"}
	for q := 1; q <= periods; q++ {
		if q == 5 {
			headers = append(headers, "OT")
			continue
		}
		headers = append(headers, fmt.Sprint(q))
	}
	headers = append(headers, "T")

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Headers(headers...)

	for _, side := range []game.Side{game.Away, game.Home} {
		coach := sum.HomeCoach
		if side == game.Away {
			coach = sum.AwayCoach
		}
		row := []string{fmt.Sprintf("%s (%s)", side, coach)}
		for q := 0; q < periods; q++ {
			row = append(row, fmt.Sprint(line[side][q]))
		}
		row = append(row, fmt.Sprint(sum.Final.Score.Of(side)))
		t.Row(row...)
	}

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("seed %d, %d snaps, winner: %s", sum.Seed, sum.Snaps, sum.Winner())))
	b.WriteString("\n\n")

	if len(sum.Scoring) == 0 {
		b.WriteString("No scoring.\n")
		return b.String()
	}
	b.WriteString(headerStyle.Render("Scoring"))
	b.WriteString("\n")
	for _, ev := range sum.Scoring {
		entry := fmt.Sprintf("  %-3s %5s  %-4s %-22s %2d-%-2d",
			periodName(ev.Quarter), game.FormatClock(ev.Clock), ev.Side, ev.Kind, ev.Score.Away, ev.Score.Home)
		if width > 0 && len(entry) > width {
			entry = entry[:width]
		}
		b.WriteString(entry)
		b.WriteString("\n")
	}
	return b.String()
}

func periodName(q int) string {
	if q > 4 {
		return "OT"
	}
	return "Q" + fmt.Sprint(q)
}
