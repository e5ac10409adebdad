package engine

import (
	"fmt"
	"slices"
	"sync"

	"github.com/dshills/hexlight/internal/scan"
)

// fakeHost is an in-memory Host for controller tests.
type fakeHost struct {
	mu       sync.Mutex
	docs     map[string]scan.Text
	info     map[string]Info
	viewport map[string][2]int
	tooling  map[string]bool
	order    []string

	// gate, when set, is received from before Viewport answers.
	gate chan struct{}
	// entered is signalled when Viewport starts waiting on gate.
	entered chan struct{}
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		docs:     make(map[string]scan.Text),
		info:     make(map[string]Info),
		viewport: make(map[string][2]int),
		tooling:  make(map[string]bool),
	}
}

func (h *fakeHost) add(doc, text string, info Info) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.docs[doc] = scan.FromString(text)
	h.info[doc] = info
	h.viewport[doc] = [2]int{0, 20}
	h.order = append(h.order, doc)
}

func (h *fakeHost) setText(doc, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.docs[doc] = scan.FromString(text)
}

func (h *fakeHost) scroll(doc string, top, bottom int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.viewport[doc] = [2]int{top, bottom}
}

func (h *fakeHost) remove(doc string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.docs, doc)
	h.order = slices.DeleteFunc(h.order, func(d string) bool { return d == doc })
}

func (h *fakeHost) Valid(doc string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.docs[doc]
	return ok
}

func (h *fakeHost) Info(doc string) (Info, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	info, ok := h.info[doc]
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrInvalidDocument, doc)
	}
	return info, nil
}

func (h *fakeHost) LineCount(doc string) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.docs[doc]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrInvalidDocument, doc)
	}
	return t.LineCount(), nil
}

func (h *fakeHost) Lines(doc string, start, end int) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.docs[doc]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, doc)
	}
	return t.Lines(start, end)
}

func (h *fakeHost) Viewport(doc string) (int, int, error) {
	h.mu.Lock()
	gate, entered := h.gate, h.entered
	h.mu.Unlock()
	if gate != nil {
		entered <- struct{}{}
		<-gate
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	vp, ok := h.viewport[doc]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrInvalidDocument, doc)
	}
	return vp[0], vp[1], nil
}

// hold makes the next Viewport calls wait until the returned func is called.
func (h *fakeHost) hold() (entered <-chan struct{}, release func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gate = make(chan struct{})
	h.entered = make(chan struct{}, 1)
	gate := h.gate
	return h.entered, func() { close(gate) }
}

func (h *fakeHost) ToolingAttached(doc string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tooling[doc]
}

func (h *fakeHost) Documents() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.order)
}
