// Package event defines the closed set of host notifications hexlight
// reacts to and a small synchronous bus that delivers them.
//
// Hosts publish an Event carrying the document id; the engine subscribes
// and decides, by Kind alone, whether to refresh now, refresh after the
// debounce interval, or drop the document's decorations.
//
//	bus := event.NewBus()
//	sub := bus.Subscribe(handler, event.ContentChanged, event.ViewportChanged)
//	defer bus.Unsubscribe(sub)
//	bus.Publish(ctx, event.Event{Kind: event.ContentChanged, Doc: "main.css"})
package event
