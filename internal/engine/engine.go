package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dshills/hexlight/internal/config"
	"github.com/dshills/hexlight/internal/debounce"
	"github.com/dshills/hexlight/internal/decoration"
	"github.com/dshills/hexlight/internal/event"
	"github.com/dshills/hexlight/internal/log"
	"github.com/dshills/hexlight/internal/pattern"
	"github.com/dshills/hexlight/internal/resolve"
	"github.com/dshills/hexlight/internal/scan"
)

// Controller holds the enabled flag and runs the pipeline for hosts.
type Controller struct {
	cfg  config.Config
	host Host
	ns   decoration.Namespace

	scanner    *scan.Scanner
	resolver   *resolve.Resolver
	renderer   *decoration.Renderer
	completion *decoration.Renderer
	sched      *debounce.Scheduler
	tracer     trace.Tracer

	// mu serialises pipeline runs and clears.
	mu      sync.Mutex
	enabled atomic.Bool
}

// New creates a controller. It starts enabled unless WithDisabled is given.
func New(cfg config.Config, host Host, ns decoration.Namespace, opts ...Option) *Controller {
	completionCfg := cfg
	completionCfg.Render = config.RenderForeground

	c := &Controller{
		cfg:        cfg,
		host:       host,
		ns:         ns,
		scanner:    scan.New(cfg.ColumnUnit),
		resolver:   resolve.New(cfg),
		renderer:   decoration.NewRenderer(cfg),
		completion: decoration.NewRenderer(completionCfg),
		tracer:     defaultTracer(),
	}
	c.enabled.Store(true)

	for _, opt := range opts {
		opt(c)
	}
	if c.sched == nil {
		c.sched = debounce.New()
	}
	return c
}

// Config returns the configuration the controller was built with.
func (c *Controller) Config() config.Config {
	return c.cfg
}

// Enabled reports whether the controller is turned on.
func (c *Controller) Enabled() bool {
	return c.enabled.Load()
}

// Highlight runs the pipeline over rows [minRow, maxRow] of doc, widened
// by RowOffset, without clearing first.
func (c *Controller) Highlight(ctx context.Context, doc string, minRow, maxRow int) error {
	if !c.Enabled() {
		return nil
	}
	if !c.host.Valid(doc) {
		return fmt.Errorf("%w: %s", ErrInvalidDocument, doc)
	}
	return c.run(ctx, doc, minRow, maxRow, false)
}

// Refresh runs the pipeline over the current viewport of doc. It is a no-op
// when the controller is off, the document is invalid, excluded, a terminal
// or not modifiable.
func (c *Controller) Refresh(ctx context.Context, doc string, clearFirst bool) (err error) {
	ctx, span := c.tracer.Start(ctx, SpanRefresh, trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	span.SetAttributes(
		attribute.String("hexlight.doc", doc),
		attribute.Bool("hexlight.clear_first", clearFirst),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if reason := c.skip(doc); reason != "" {
		span.SetAttributes(attribute.String("hexlight.skipped", reason))
		log.Debug(log.CatEngine, "refresh skipped", "doc", doc, "reason", reason)
		return nil
	}

	top, bottom, err := c.host.Viewport(doc)
	if err != nil {
		return fmt.Errorf("viewport of %s: %w", doc, err)
	}
	if bottom < top {
		// The text shrank under the viewport; only what is left is visible.
		top = max(bottom, 0)
		bottom = top
	}
	return c.run(ctx, doc, top, bottom, clearFirst)
}

// skip returns why doc must not be refreshed, or "" when it may be.
func (c *Controller) skip(doc string) string {
	if !c.Enabled() {
		return "disabled"
	}
	if !c.host.Valid(doc) {
		return "invalid"
	}
	info, err := c.host.Info(doc)
	if err != nil {
		log.ErrorErr(log.CatEngine, "document info", err, "doc", doc)
		return "invalid"
	}
	switch {
	case c.cfg.ExcludesFiletype(info.Filetype):
		return "excluded filetype"
	case c.cfg.ExcludesBuftype(info.Buftype):
		return "excluded buftype"
	case info.Terminal:
		return "terminal"
	case !info.Modifiable:
		return "not modifiable"
	}
	return ""
}

func (c *Controller) run(ctx context.Context, doc string, minRow, maxRow int, clearFirst bool) (err error) {
	if maxRow < minRow {
		return fmt.Errorf("%w: rows %d-%d", ErrRangeInvalid, minRow, maxRow)
	}

	_, span := c.tracer.Start(ctx, SpanHighlight, trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	c.mu.Lock()
	defer c.mu.Unlock()

	// TurnOff may have run while this refresh waited for the lock.
	if !c.Enabled() {
		span.SetAttributes(attribute.String("hexlight.skipped", "disabled"))
		return nil
	}

	src := hostDocument{host: c.host, doc: doc}
	lo, hi := scan.Window(minRow, maxRow, RowOffset, src.LineCount())
	span.SetAttributes(
		attribute.String("hexlight.doc", doc),
		attribute.Int("hexlight.min_row", lo),
		attribute.Int("hexlight.max_row", hi),
	)
	if lo > hi && !clearFirst {
		return nil
	}

	var (
		matches  []scan.Match
		resolved []resolve.Resolved
	)
	if lo <= hi {
		patterns := pattern.Build(c.cfg, c.host.ToolingAttached(doc))
		matches, err = c.scanner.Scan(patterns, minRow, maxRow, src, RowOffset)
		if err != nil {
			return fmt.Errorf("scan %s: %w", doc, err)
		}
		resolved = c.resolver.ResolveAll(src, matches)
	}

	res, err := c.renderer.Render(c.ns, doc, src, lo, hi, resolved, clearFirst)
	span.SetAttributes(
		attribute.Int("hexlight.matches", len(matches)),
		attribute.Int("hexlight.resolved", len(resolved)),
		attribute.Int("hexlight.placed", res.Placed),
		attribute.Int("hexlight.removed", res.Removed),
	)
	if err != nil {
		log.ErrorErr(log.CatRender, "render", err, "doc", doc)
		return err
	}
	return nil
}

// Clear removes every decoration of doc. Exclusions do not apply, and a
// stale handle does not keep the rest from being removed.
func (c *Controller) Clear(ctx context.Context, doc string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed, err := decoration.Clear(c.ns, doc)
	if err != nil {
		log.ErrorErr(log.CatEngine, "clear", err, "doc", doc, "removed", removed)
		return err
	}
	log.Debug(log.CatEngine, "cleared", "doc", doc, "removed", removed)
	return nil
}

// forget clears doc and releases whatever the namespace still keeps for it.
func (c *Controller) forget(doc string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed, err := decoration.Clear(c.ns, doc)
	if d, ok := c.ns.(decoration.Dropper); ok {
		d.Drop(doc)
	}
	if err != nil {
		log.ErrorErr(log.CatEngine, "clear closed document", err, "doc", doc, "removed", removed)
		return err
	}
	log.Debug(log.CatEngine, "forgot document", "doc", doc, "removed", removed)
	return nil
}

// TurnOn enables the controller and refreshes every open document.
func (c *Controller) TurnOn(ctx context.Context) error {
	c.enabled.Store(true)
	log.Info(log.CatEngine, "turned on")

	var errs []error
	for _, doc := range c.host.Documents() {
		if err := c.Refresh(ctx, doc, true); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TurnOff disables the controller, drops pending refreshes and clears
// every open document.
func (c *Controller) TurnOff(ctx context.Context) error {
	c.enabled.Store(false)
	log.Info(log.CatEngine, "turned off")

	var errs []error
	for _, doc := range c.host.Documents() {
		c.sched.Cancel(doc)
		if err := c.Clear(ctx, doc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Toggle flips the enabled flag and returns the new state.
func (c *Controller) Toggle(ctx context.Context) (bool, error) {
	if c.Enabled() {
		return false, c.TurnOff(ctx)
	}
	return true, c.TurnOn(ctx)
}

// Command dispatches "on", "off" or "toggle" in any case. It reports
// whether arg was recognised; unknown arguments change nothing.
func (c *Controller) Command(ctx context.Context, arg string) bool {
	var err error
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "on":
		err = c.TurnOn(ctx)
	case "off":
		err = c.TurnOff(ctx)
	case "toggle":
		_, err = c.Toggle(ctx)
	default:
		log.Warn(log.CatEngine, "unknown command", "arg", arg)
		return false
	}
	if err != nil {
		log.ErrorErr(log.CatEngine, "command", err, "arg", arg)
	}
	return true
}

// HandleEvent reacts to a host event. Redraw events refresh at once with
// the window cleared first; viewport changes refresh after the debounce
// interval; a closed document loses its pending refresh and decorations.
func (c *Controller) HandleEvent(ctx context.Context, ev event.Event) error {
	switch {
	case ev.Kind == event.DocumentClosed:
		c.sched.Cancel(ev.Doc)
		return c.forget(ev.Doc)
	case !c.Enabled():
		return nil
	case ev.Kind.FullRedraw():
		return c.Refresh(ctx, ev.Doc, true)
	case ev.Kind == event.ViewportChanged:
		bg := context.WithoutCancel(ctx)
		c.sched.Schedule(ev.Doc, c.cfg.Debounce, func() {
			if err := c.Refresh(bg, ev.Doc, false); err != nil {
				log.ErrorErr(log.CatEngine, "debounced refresh", err, "doc", ev.Doc)
			}
		})
		return nil
	default:
		return fmt.Errorf("%w: kind %s", event.ErrInvalidEvent, ev.Kind)
	}
}

// Subscribe registers the controller on bus for every event kind.
func (c *Controller) Subscribe(bus *event.Bus) event.Subscription {
	return bus.Subscribe(event.HandlerFunc(c.HandleEvent))
}

// Pending reports whether doc has a debounced refresh waiting.
func (c *Controller) Pending(doc string) bool {
	return c.sched.Pending(doc)
}

// Close stops every pending debounced refresh.
func (c *Controller) Close() {
	c.sched.Stop()
}
