package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/hexlight/internal/debounce"
	"github.com/dshills/hexlight/internal/decoration"
	"github.com/dshills/hexlight/internal/engine"
	"github.com/dshills/hexlight/internal/event"
	"github.com/dshills/hexlight/internal/term"
	"github.com/dshills/hexlight/internal/workspace"
)

func (c *cli) viewCmd() *cobra.Command {
	var noWatch bool
	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Browse a file with live color decorations",
		Long: `Open FILE in a read-only terminal viewer. Decorations follow scrolling
and are redrawn when the file changes on disk.

Keys: j/k or arrows scroll, space/b page, g/G top/bottom, t toggle, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("creating screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initializing screen: %w", err)
			}
			defer screen.Fini()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.view(ctx, screen, args[0], !noWatch)
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the file when it changes on disk")
	return cmd
}

// view runs the viewer for path on an initialised screen.
func (c *cli) view(ctx context.Context, screen tcell.Screen, path string, watch bool) error {
	bus := event.NewBus()
	ws := workspace.New(bus)
	ns := decoration.NewStore()
	sched := debounce.New(debounce.WithExecutor(term.Executor(screen)))
	ctrl := engine.New(c.cfg, ws, ns, engine.WithScheduler(sched))
	defer ctrl.Close()
	ctrl.Subscribe(bus)

	_, height := screen.Size()
	if err := ws.Resize(ctx, max(height-1, 1)); err != nil {
		return err
	}
	id, err := ws.Open(ctx, path)
	if err != nil {
		return err
	}

	if watch {
		w, err := workspace.NewWatcher(ws)
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()
		// Reload failures are logged by the watcher; the viewer keeps the
		// last good text.
		if err := w.Track(id); err != nil {
			return err
		}
	}

	return term.NewViewer(screen, ws, ctrl, ns, id).Run(ctx)
}
