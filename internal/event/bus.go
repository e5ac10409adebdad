package event

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dshills/hexlight/internal/log"
)

// Handler is the interface for event handlers.
type Handler interface {
	// Handle processes an event.
	Handle(ctx context.Context, ev Event) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, ev Event) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

// Subscription identifies a registered handler.
type Subscription uint64

type subscriber struct {
	id      Subscription
	handler Handler
	kinds   []Kind // empty means every kind
}

func (s subscriber) wants(k Kind) bool {
	return len(s.kinds) == 0 || slices.Contains(s.kinds, k)
}

// Bus delivers events synchronously, in subscription order, on the
// publisher's goroutine.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscriber
	nextID atomic.Uint64

	published atomic.Uint64
	delivered atomic.Uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for the given kinds, or for every kind when none
// are given. A nil handler is ignored and returns zero.
func (b *Bus) Subscribe(h Handler, kinds ...Kind) Subscription {
	if h == nil {
		log.Warn(log.CatHost, "ignored nil event handler")
		return 0
	}
	id := Subscription(b.nextID.Add(1))

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, subscriber{id: id, handler: h, kinds: slices.Clone(kinds)})
	return id
}

// SubscribeFunc registers fn for the given kinds.
func (b *Bus) SubscribeFunc(fn HandlerFunc, kinds ...Kind) Subscription {
	if fn == nil {
		return b.Subscribe(nil, kinds...)
	}
	return b.Subscribe(fn, kinds...)
}

// Unsubscribe removes a subscription. It reports whether it was present.
func (b *Bus) Unsubscribe(id Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			b.subs = slices.Delete(b.subs, i, i+1)
			return true
		}
	}
	return false
}

// Publish delivers ev to every matching handler. Handler failures and
// panics are collected; one failing handler does not stop the others.
func (b *Bus) Publish(ctx context.Context, ev Event) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	b.published.Add(1)

	b.mu.RLock()
	subs := slices.Clone(b.subs)
	b.mu.RUnlock()

	var errs []error
	for _, s := range subs {
		if !s.wants(ev.Kind) {
			continue
		}
		if err := b.deliver(ctx, s.handler, ev); err != nil {
			log.ErrorErr(log.CatHost, "event handler failed", err, "event", ev.String())
			errs = append(errs, &HandlerError{Event: ev, Err: err})
		}
	}
	return errors.Join(errs...)
}

func (b *Bus) deliver(ctx context.Context, h Handler, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	b.delivered.Add(1)
	return h.Handle(ctx, ev)
}

// Stats returns the number of events published and handler invocations.
func (b *Bus) Stats() (published, delivered uint64) {
	return b.published.Load(), b.delivered.Load()
}
