package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/challengely/challengely/internal/app"
	"github.com/challengely/challengely/internal/config"
	"github.com/challengely/challengely/internal/haptic"
	"github.com/challengely/challengely/internal/logger"
	"github.com/challengely/challengely/internal/notify"
	"github.com/challengely/challengely/internal/share"
	"github.com/challengely/challengely/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	policy, err := notify.ParsePolicy(e.cfg.Notifications.Permission)
	if err != nil {
		return err
	}
	sched, err := notify.NewCronScheduler(notify.CronOptions{
		Policy:   policy,
		Location: time.Local,
		Logger:   e.log,
	})
	if err != nil {
		return fmt.Errorf("start reminder scheduler: %w", err)
	}
	defer func() {
		if err := sched.Shutdown(); err != nil {
			e.log.Warn("shutdown scheduler", "error", err)
		}
	}()

	renderer, err := newRenderer(e.cfg, e.log)
	if err != nil {
		return err
	}

	lo, hi, err := e.cfg.ReplyDelay()
	if err != nil {
		return err
	}

	var feedback haptic.Feedback = haptic.Nop{}
	if e.cfg.Haptics.Bell {
		feedback = haptic.NewTerminal(os.Stderr)
	}

	e.log.Info("starting", "version", version)
	return app.Run(ctx, app.Options{
		Store:         e.store,
		Scheduler:     sched,
		Feedback:      feedback,
		Sharer:        renderer,
		Logger:        e.log,
		ReplyDelayMin: lo,
		ReplyDelayMax: hi,
	})
}

// newRenderer builds the share card renderer writing to the configured
// directory, or <data dir>/shares.
func newRenderer(cfg *config.Config, log *logger.Logger) (*share.Renderer, error) {
	dir := cfg.Share.OutputDir
	if dir == "" {
		data, err := store.DataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		dir = filepath.Join(data, "shares")
	}
	r, err := share.NewRenderer(dir, log)
	if err != nil {
		return nil, fmt.Errorf("create share renderer: %w", err)
	}
	return r, nil
}
