package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch PATH",
		Short: "Print a file each time it changes, until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Clean(args[0])
			h, err := a.handle(path)
			if err != nil {
				return err
			}
			w, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("failed to create watcher: %w", err)
			}
			defer func() {
				_ = w.Close()
			}()
			// Watch the parent; a file replaced on save drops its own watch.
			if err := w.Add(filepath.Dir(path)); err != nil {
				return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
			}

			out := cmd.OutOrStdout()
			show := func() {
				if err := h.read(out); err != nil {
					a.log.Warn("read failed", "path", path, "error", err)
				}
			}
			show()
			ctx := cmd.Context()
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case ev, ok := <-w.Events:
					if !ok {
						return nil
					}
					if isUpdate(ev, path) {
						a.log.Debug("file changed", "path", path, "op", ev.Op.String())
						show()
					}
				case err, ok := <-w.Errors:
					if !ok {
						return nil
					}
					if errors.Is(err, fsnotify.ErrEventOverflow) {
						a.log.Warn("watch events dropped", "path", path)
						show()
						continue
					}
					return fmt.Errorf("watch failed: %w", err)
				}
			}
		},
	}
}

// isUpdate returns true if ev means path got new content.
func isUpdate(ev fsnotify.Event, path string) bool {
	if filepath.Clean(ev.Name) != path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
