package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"spray-logger/utils"
	"spray-logger/views"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <log>",
	Short: "Re-parse a log and print its summary whenever the file changes",
	Long: `Watch loads the log once, then reloads it from scratch each time the file
is written or replaced. Every reload builds a new, independent result.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		out := cmd.OutOrStdout()
		reload := func() {
			lg, err := e.load(args[0])
			if err != nil {
				e.log.Error("%v", err)
				return
			}
			defer lg.Close()
			fmt.Fprintf(out, "\n%s %s\n", styleHint.Render("reloaded at"), time.Now().Format(time.TimeOnly))
			if err := views.RenderSummary(out, lg.Summary()); err != nil {
				e.log.Error("render summary: %v", err)
			}
		}
		return watchFile(cmd.Context(), args[0], watchDebounce, e.log, reload)
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 250*time.Millisecond, "quiet period before reloading after a change")
}

// watchFile calls reload once, then again after each burst of writes to
// path settles for debounce. The parent directory is watched so that
// editors replacing the file are noticed. Returns when ctx is done.
func watchFile(ctx context.Context, path string, debounce time.Duration, log *utils.Logger, reload func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	log.Info("watching %s", abs)

	reload()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher: %v", err)

		case <-fire:
			fire = nil
			reload()
		}
	}
}
