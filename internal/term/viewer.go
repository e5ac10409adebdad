package term

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hexlight/internal/decoration"
	"github.com/dshills/hexlight/internal/engine"
	"github.com/dshills/hexlight/internal/log"
	"github.com/dshills/hexlight/internal/workspace"
)

// Viewer shows one workspace document and scrolls through it.
//
// Keys: j/k or arrows scroll one row, space/b or PgDn/PgUp scroll a page,
// g/G jump to the top/bottom, t toggles hexlight, q or Esc quits.
type Viewer struct {
	screen  tcell.Screen
	painter *Painter
	ws      *workspace.Workspace
	ctrl    *engine.Controller
	ns      decoration.Namespace
	doc     string
	top     int
}

// NewViewer creates a viewer for doc. The screen must already be initialised.
func NewViewer(screen tcell.Screen, ws *workspace.Workspace, ctrl *engine.Controller, ns decoration.Namespace, doc string) *Viewer {
	return &Viewer{
		screen:  screen,
		painter: NewPainter(screen, ctrl.Config().ColumnUnit),
		ws:      ws,
		ctrl:    ctrl,
		ns:      ns,
		doc:     doc,
	}
}

// Run processes screen events until the user quits, ctx is done or the
// screen is finalised.
func (v *Viewer) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	_, height := v.screen.Size()
	if err := v.ws.Resize(ctx, max(height-1, 1)); err != nil {
		log.ErrorErr(log.CatHost, "resize", err)
	}
	v.Draw()

	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if quit := v.Handle(ctx, ev); quit {
			return nil
		}
		v.Draw()
	}
}

// Handle applies one screen event and reports whether the viewer should quit.
func (v *Viewer) Handle(ctx context.Context, ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventInterrupt:
		if action, ok := e.Data().(func()); ok && action != nil {
			action()
		}
	case *tcell.EventResize:
		_, height := e.Size()
		v.screen.Sync()
		if err := v.ws.Resize(ctx, max(height-1, 1)); err != nil {
			log.ErrorErr(log.CatHost, "resize", err)
		}
	case *tcell.EventKey:
		return v.key(ctx, e)
	}
	return false
}

func (v *Viewer) key(ctx context.Context, e *tcell.EventKey) bool {
	_, height := v.screen.Size()
	page := max(height-2, 1)

	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyDown:
		v.scroll(ctx, v.top+1)
	case tcell.KeyUp:
		v.scroll(ctx, v.top-1)
	case tcell.KeyPgDn:
		v.scroll(ctx, v.top+page)
	case tcell.KeyPgUp:
		v.scroll(ctx, v.top-page)
	case tcell.KeyRune:
		switch e.Rune() {
		case 'q':
			return true
		case 'j':
			v.scroll(ctx, v.top+1)
		case 'k':
			v.scroll(ctx, v.top-1)
		case ' ':
			v.scroll(ctx, v.top+page)
		case 'b':
			v.scroll(ctx, v.top-page)
		case 'g':
			v.scroll(ctx, 0)
		case 'G':
			n, _ := v.ws.LineCount(v.doc)
			v.scroll(ctx, n-page)
		case 't':
			v.ctrl.Command(ctx, "toggle")
		}
	}
	return false
}

func (v *Viewer) scroll(ctx context.Context, top int) {
	n, err := v.ws.LineCount(v.doc)
	if err != nil {
		return
	}
	top = max(0, min(top, n-1))
	if top == v.top {
		return
	}
	v.top = top
	if err := v.ws.Scroll(ctx, v.doc, top); err != nil {
		log.ErrorErr(log.CatHost, "scroll", err, "doc", v.doc)
	}
}

// Top returns the first visible document row.
func (v *Viewer) Top() int {
	return v.top
}

// Draw repaints the screen.
func (v *Viewer) Draw() {
	_, height := v.screen.Size()
	n, err := v.ws.LineCount(v.doc)
	if err != nil {
		return
	}
	end := min(v.top+max(height-1, 0), n)
	lines, err := v.ws.Lines(v.doc, v.top, end)
	if err != nil {
		log.ErrorErr(log.CatHost, "read lines", err, "doc", v.doc)
		return
	}
	decs, err := v.ns.List(v.doc)
	if err != nil {
		log.ErrorErr(log.CatHost, "list decorations", err, "doc", v.doc)
	}

	state := "off"
	if v.ctrl.Enabled() {
		state = "on"
	}
	status := fmt.Sprintf(" %s  %d/%d  hexlight:%s  %d decorations", v.doc, v.top+1, n, state, len(decs))
	v.painter.Paint(lines, v.top, decs, status)
}
