package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/challengely/challengely/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the challenge catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all challenges (optionally filtered by category or difficulty)",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		difficulty, _ := cmd.Flags().GetString("difficulty")

		challenges := catalog.All()
		if category != "" {
			cat, ok := catalog.ParseCategory(category)
			if !ok {
				return fmt.Errorf("unknown category %q", category)
			}
			challenges = catalog.ByCategory(cat)
		}
		if difficulty != "" {
			d, ok := catalog.ParseDifficulty(difficulty)
			if !ok {
				return fmt.Errorf("unknown difficulty %q", difficulty)
			}
			filtered := challenges[:0:0]
			for _, c := range challenges {
				if c.Difficulty == d {
					filtered = append(filtered, c)
				}
			}
			challenges = filtered
		}
		if len(challenges) == 0 {
			return fmt.Errorf("no challenges match")
		}

		w := cmd.OutOrStdout()
		// Header.
		fmt.Fprintf(w, "%-32s  %-32s  %-14s  %-6s  %s\n",
			"ID", "Title", "Category", "Level", "Minutes")
		fmt.Fprintln(w, strings.Repeat("─", 100))

		for _, c := range challenges {
			title := c.Title
			if len(title) > 32 {
				title = title[:29] + "..."
			}
			fmt.Fprintf(w, "%-32s  %-32s  %-14s  %-6s  %d\n",
				c.ID, title, c.Category.DisplayName(), c.Difficulty.DisplayName(), int(c.Duration().Minutes()))
		}

		fmt.Fprintf(w, "\n%d challenges\n", len(challenges))
		return nil
	},
}

func init() {
	catalogListCmd.Flags().String("category", "", "Filter by category (e.g. fitness, mindfulness)")
	catalogListCmd.Flags().String("difficulty", "", "Filter by difficulty (easy, medium, hard)")

	catalogCmd.AddCommand(catalogListCmd)
}
