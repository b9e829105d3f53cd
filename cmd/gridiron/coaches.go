package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridiron/internal/registry"
)

var coachesCmd = &cobra.Command{
	Use:   "coaches",
	Short: "List coaching styles",
	Long:  `Shows every registered coaching style and, when a results database exists, its record.`,
	Args:  cobra.NoArgs,
	RunE:  runCoaches,
}

func runCoaches(cmd *cobra.Command, args []string) error {
	coaches := registry.List()
	out := cmd.OutOrStdout()
	if len(coaches) == 0 {
		fmt.Fprintln(out, "No coaches available.")
		return nil
	}

	store, err := openStore()
	if err != nil {
		logger.Warn("results database unavailable, records omitted", "err", err)
	} else {
		defer store.Close()
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, c := range coaches {
		maxIDLen = max(maxIDLen, len(c.ID))
	}

	fmt.Fprintf(out, "  %-*s  %-10s  %s\n", maxIDLen, "ID", "W-L-T", "Title")
	fmt.Fprintf(out, "  %-*s  %-10s  %s\n", maxIDLen, "--", "-----", "-----")
	for _, c := range coaches {
		record := "-"
		if store != nil {
			if r, err := store.CoachRecord(cmd.Context(), c.ID); err == nil && r.Games > 0 {
				record = fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.Ties)
			}
		}
		fmt.Fprintf(out, "  %-*s  %-10s  %s\n", maxIDLen, c.ID, record, c.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'gridiron sim --home <id> --away <id>' to match two of them.")
	return nil
}
