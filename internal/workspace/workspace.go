// Package workspace is an in-memory editor host: open documents, their
// viewports and the events a real editor would emit for them.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/dshills/hexlight/internal/engine"
	"github.com/dshills/hexlight/internal/event"
	"github.com/dshills/hexlight/internal/log"
	"github.com/dshills/hexlight/internal/scan"
)

// Errors returned by workspace operations.
var (
	ErrNotOpen     = errors.New("document not open")
	ErrAlreadyOpen = errors.New("document already open")
)

// DefaultHeight is the number of visible rows of a new document.
const DefaultHeight = 40

// DocOption configures a document when it is added.
type DocOption func(*document)

// WithFiletype overrides the filetype derived from the document id.
func WithFiletype(ft string) DocOption {
	return func(d *document) { d.info.Filetype = ft }
}

// WithBuftype sets the buffer type, e.g. "nofile" or "help".
func WithBuftype(bt string) DocOption {
	return func(d *document) { d.info.Buftype = bt }
}

// AsTerminal marks the document as a terminal surface.
func AsTerminal() DocOption {
	return func(d *document) { d.info.Terminal = true }
}

// ReadOnly marks the document as not modifiable.
func ReadOnly() DocOption {
	return func(d *document) { d.info.Modifiable = false }
}

type document struct {
	path    string // empty for scratch documents
	text    scan.Text
	info    engine.Info
	top     int
	tooling bool
}

var _ engine.Host = (*Workspace)(nil)

// Workspace implements engine.Host.
type Workspace struct {
	mu     sync.RWMutex
	docs   map[string]*document
	order  []string
	height int
	bus    *event.Bus
}

// New creates a workspace publishing its events on bus. bus may be nil.
func New(bus *event.Bus) *Workspace {
	return &Workspace{
		docs:   make(map[string]*document),
		height: DefaultHeight,
		bus:    bus,
	}
}

// Add opens an in-memory document and enters it.
func (w *Workspace) Add(ctx context.Context, id, text string, opts ...DocOption) error {
	d := &document{
		text: scan.FromString(text),
		info: engine.Info{Filetype: FiletypeFor(id), Modifiable: true},
	}
	for _, opt := range opts {
		opt(d)
	}

	w.mu.Lock()
	if _, ok := w.docs[id]; ok {
		w.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrAlreadyOpen, id)
	}
	w.docs[id] = d
	w.order = append(w.order, id)
	w.mu.Unlock()

	log.Debug(log.CatHost, "document added", "doc", id, "filetype", d.info.Filetype)
	return w.publish(ctx, event.DocumentEntered, id)
}

// Open reads path from disk and adds it under its cleaned path.
func (w *Workspace) Open(ctx context.Context, path string, opts ...DocOption) (string, error) {
	id := filepath.Clean(path)
	data, err := os.ReadFile(id)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	opts = append([]DocOption{func(d *document) { d.path = id }}, opts...)
	if err := w.Add(ctx, id, string(data), opts...); err != nil {
		return "", err
	}
	return id, nil
}

// Reload rereads a document opened from disk.
func (w *Workspace) Reload(ctx context.Context, id string) error {
	w.mu.RLock()
	d, ok := w.docs[id]
	w.mu.RUnlock()
	if !ok || d.path == "" {
		return fmt.Errorf("%w: %s", ErrNotOpen, id)
	}
	data, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("reload %s: %w", id, err)
	}
	return w.SetText(ctx, id, string(data))
}

// SetText replaces the text of a document.
func (w *Workspace) SetText(ctx context.Context, id, text string) error {
	if err := w.update(id, func(d *document) {
		d.text = scan.FromString(text)
		d.top = clampTop(d.top, len(d.text))
	}); err != nil {
		return err
	}
	return w.publish(ctx, event.ContentChanged, id)
}

// SetLine replaces one row of a document.
func (w *Workspace) SetLine(ctx context.Context, id string, row int, line string) error {
	var rangeErr error
	err := w.update(id, func(d *document) {
		if row < 0 || row >= len(d.text) {
			rangeErr = fmt.Errorf("row %d outside %s", row, id)
			return
		}
		text := slices.Clone(d.text)
		text[row] = line
		d.text = text
	})
	if err != nil {
		return err
	}
	if rangeErr != nil {
		return rangeErr
	}
	return w.publish(ctx, event.ContentChanged, id)
}

// Scroll moves the first visible row of a document.
func (w *Workspace) Scroll(ctx context.Context, id string, top int) error {
	if err := w.update(id, func(d *document) {
		d.top = clampTop(top, len(d.text))
	}); err != nil {
		return err
	}
	return w.publish(ctx, event.ViewportChanged, id)
}

// Resize changes the number of visible rows of every document.
func (w *Workspace) Resize(ctx context.Context, height int) error {
	w.mu.Lock()
	w.height = max(1, height)
	ids := slices.Clone(w.order)
	w.mu.Unlock()

	var errs []error
	for _, id := range ids {
		errs = append(errs, w.publish(ctx, event.ViewportChanged, id))
	}
	return errors.Join(errs...)
}

// Enter makes id the active document.
func (w *Workspace) Enter(ctx context.Context, id string) error {
	if !w.Valid(id) {
		return fmt.Errorf("%w: %s", ErrNotOpen, id)
	}
	return w.publish(ctx, event.DocumentEntered, id)
}

// ExitEditMode reports that the user left insert mode in id.
func (w *Workspace) ExitEditMode(ctx context.Context, id string) error {
	if !w.Valid(id) {
		return fmt.Errorf("%w: %s", ErrNotOpen, id)
	}
	return w.publish(ctx, event.EditModeExited, id)
}

// AttachTooling marks id as decorated by an external color highlighter.
func (w *Workspace) AttachTooling(ctx context.Context, id string) error {
	if err := w.update(id, func(d *document) { d.tooling = true }); err != nil {
		return err
	}
	return w.publish(ctx, event.ToolingAttached, id)
}

// Close publishes DocumentClosed and forgets the document.
func (w *Workspace) Close(ctx context.Context, id string) error {
	if !w.Valid(id) {
		return fmt.Errorf("%w: %s", ErrNotOpen, id)
	}
	err := w.publish(ctx, event.DocumentClosed, id)

	w.mu.Lock()
	delete(w.docs, id)
	w.order = slices.DeleteFunc(w.order, func(d string) bool { return d == id })
	w.mu.Unlock()
	return err
}

// Path returns the file backing id, if any.
func (w *Workspace) Path(id string) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	d, ok := w.docs[id]
	if !ok || d.path == "" {
		return "", false
	}
	return d.path, true
}

func (w *Workspace) update(id string, fn func(*document)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	d, ok := w.docs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotOpen, id)
	}
	fn(d)
	return nil
}

func (w *Workspace) publish(ctx context.Context, kind event.Kind, id string) error {
	if w.bus == nil {
		return nil
	}
	return w.bus.Publish(ctx, event.Event{Kind: kind, Doc: id})
}

// Valid implements engine.Host.
func (w *Workspace) Valid(id string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.docs[id]
	return ok
}

// Info implements engine.Host.
func (w *Workspace) Info(id string) (engine.Info, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	d, ok := w.docs[id]
	if !ok {
		return engine.Info{}, fmt.Errorf("%w: %s", ErrNotOpen, id)
	}
	return d.info, nil
}

// LineCount implements engine.Host.
func (w *Workspace) LineCount(id string) (int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	d, ok := w.docs[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotOpen, id)
	}
	return len(d.text), nil
}

// Lines implements engine.Host.
func (w *Workspace) Lines(id string, start, end int) ([]string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	d, ok := w.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotOpen, id)
	}
	return d.text.Lines(start, end)
}

// Viewport implements engine.Host.
func (w *Workspace) Viewport(id string) (int, int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	d, ok := w.docs[id]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrNotOpen, id)
	}
	top := clampTop(d.top, len(d.text))
	bottom := min(top+w.height-1, len(d.text)-1)
	return top, bottom, nil
}

// clampTop keeps a first visible row inside a document of n rows.
func clampTop(top, n int) int {
	return max(0, min(top, n-1))
}

// ToolingAttached implements engine.Host.
func (w *Workspace) ToolingAttached(id string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	d, ok := w.docs[id]
	return ok && d.tooling
}

// Documents implements engine.Host.
func (w *Workspace) Documents() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.order)
}

var filetypes = map[string]string{
	".css":    "css",
	".scss":   "scss",
	".sass":   "sass",
	".less":   "less",
	".html":   "html",
	".htm":    "html",
	".vue":    "vue",
	".svelte": "svelte",
	".js":     "javascript",
	".jsx":    "javascriptreact",
	".ts":     "typescript",
	".tsx":    "typescriptreact",
	".lua":    "lua",
	".go":     "go",
	".md":     "markdown",
	".toml":   "toml",
	".yaml":   "yaml",
	".yml":    "yaml",
	".json":   "json",
	".txt":    "text",
}

// FiletypeFor derives a filetype from a file name's extension.
func FiletypeFor(name string) string {
	return filetypes[strings.ToLower(filepath.Ext(name))]
}
