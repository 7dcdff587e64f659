// Package ui provides the terminal user interface for Pokédeck.
//
// # Architecture Overview
//
// The UI is built on Bubble Tea. A single root Model routes messages and
// keys to the active view; all catalog state lives in collection.Engine
// and all per-entry edit state in detail.Reconciler, so the Model itself
// holds only presentation concerns (selection, focus, overlays).
//
// # Package Structure
//
//   - app.go: Root model, message/command definitions, and the Run function
//   - catalog.go: Paged entry list, search box with suggestions, type filter overlay
//   - detail.go: Single-entry view with stat bars and the delete confirmation
//   - form.go: Shared create/edit form built from textinputs
//   - favorites.go: Favorites list resolved against the engine's mirror
//   - keys.go: Key bindings
//   - theme.go: Type color palette and lipgloss styles
//
// # Views
//
// Four views are available:
//
//   - Catalog: paged list with live French-name search and type filters
//   - Detail: names, types, base stats, image and cry URLs
//   - Form: creation or edition of an entry
//   - Favorites: the favorited entries, in catalog order
//
// # Data Flow
//
// Network work happens inside tea.Cmd functions; their results come back
// as messages carrying fresh collection.View snapshots or fetched entries.
// Out-of-band events — favorites mutations made by this process,
// reconciler invalidations — enter the program through a notifier bound
// to program.Send. Writes by other processes are not watched; they become
// visible on the next favorites read.
package ui
