package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridiron/internal/charts"
)

var chartsCmd = &cobra.Command{
	Use:   "charts [deck]",
	Short: "Show the play charts",
	Long: `Without arguments, list the loaded decks and their plays.
With a deck name, print the deck's full chart: one row per play, one
column per defensive formation.

Examples:
  gridiron charts
  gridiron charts aerial
  gridiron charts ball_control --charts ./my-charts.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCharts,
}

func runCharts(cmd *cobra.Command, args []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		for _, deck := range tables.DeckNames() {
			fmt.Fprintln(out, headerStyle.Render(deck))
			for _, play := range tables.Plays(deck) {
				fmt.Fprintf(out, "  %-22s %s\n", play, tables.Kind(play))
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, "Defenses:")
		for _, d := range charts.Defenses {
			fmt.Fprintf(out, "  %s  %s\n", d.Letter, d.Label)
		}
		return nil
	}

	deck := args[0]
	plays := tables.Plays(deck)
	if len(plays) == 0 {
		return fmt.Errorf("unknown deck %q (have %v)", deck, tables.DeckNames())
	}

	headers := []string{"Play"}
	for _, d := range charts.Defenses {
		headers = append(headers, d.Letter)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Headers(headers...)

	for _, play := range plays {
		row := []string{play}
		for _, d := range charts.Defenses {
			cell := "-"
			if raw := tables.Lookup(deck, play, d.Letter); raw != nil {
				cell = *raw
			}
			row = append(row, cell)
		}
		t.Row(row...)
	}
	fmt.Fprintln(out, t.Render())
	return nil
}
