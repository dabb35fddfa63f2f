package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/challengely/challengely/internal/challenge"
	"github.com/challengely/challengely/internal/share"
)

var errNotCompleted = errors.New("today's challenge is not completed yet")

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Render today's achievement card as a PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			e.cfg.Share.OutputDir = out
		}
		renderer, err := newRenderer(e.cfg, e.log)
		if err != nil {
			return err
		}

		path, err := shareToday(cmd.Context(), e.store, renderer)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

// shareToday saves the card for today's completion.
func shareToday(ctx context.Context, st challenge.Store, r *share.Renderer) (string, error) {
	eng := challenge.New(challenge.Deps{Store: st})
	eng.Activate(ctx)
	if eng.State.Phase != challenge.PhaseCompleted {
		return "", errNotCompleted
	}
	path, err := r.Save(eng.ShareCard())
	if err != nil {
		return "", fmt.Errorf("save share card: %w", err)
	}
	return path, nil
}

func init() {
	shareCmd.Flags().String("out", "", "Directory to write the card to (default <data dir>/shares)")
}
