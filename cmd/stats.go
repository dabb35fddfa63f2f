package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/challengely/challengely/internal/analytics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streak and completion statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		sum, err := analytics.Load(cmd.Context(), e.store, time.Now())
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		printStats(cmd.OutOrStdout(), sum)
		return nil
	},
}

func printStats(w io.Writer, sum analytics.Summary) {
	fmt.Fprintf(w, "Current streak:  %d day(s)\n", sum.Streak)
	fmt.Fprintf(w, "Completed:       %d challenge(s)\n\n", sum.Total)

	fmt.Fprintln(w, "7-day streak progress")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	for i, v := range sum.StreakHistory {
		fmt.Fprintf(w, "%-4s %3d  %s\n", sum.DayLabels[i], v, strings.Repeat("█", v))
	}

	if len(sum.Breakdown) == 0 {
		return
	}
	fmt.Fprintln(w, "\nCategories")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	for _, c := range sum.Breakdown {
		fmt.Fprintf(w, "%-16s %3d\n", c.Category.DisplayName(), c.Count)
	}
}
