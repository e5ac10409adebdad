// Package engine provides the hexlight controller: the single object hosts
// talk to.
//
// The controller owns the enabled flag and runs the detection pipeline for
// a document window:
//
//	pattern.Build -> scan.Scanner -> resolve.Resolver -> decoration.Renderer
//
// # Host Contract
//
// Everything about documents comes from a Host: validity, kind, text by row
// range and the visible rows. Decorations live in a decoration.Namespace
// owned by hexlight alone.
//
// # Events
//
// Hosts publish event.Event values. Kinds that change what the window shows
// (content changed, edit mode exited, tooling attached, document entered)
// refresh immediately with the window cleared first. Viewport changes are
// debounced per document and refresh without clearing. A closed document
// loses its pending refresh and its decorations.
//
// # Thread Safety
//
// Pipeline runs are serialised by a mutex, so a debounced refresh firing on
// a timer goroutine never interleaves with an event-driven one. Hosts that
// want everything on their own loop pass debounce.WithExecutor.
//
// # Basic Usage
//
//	ctrl := engine.New(cfg, host, decoration.NewStore())
//	ctrl.Subscribe(bus)
//	ctrl.Command(ctx, "toggle")
package engine
