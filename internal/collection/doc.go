// Package collection owns the paged, filtered, and searched view over the
// remote catalog.
//
// # Overview
//
// The Engine sits between the API client and the UI. It tracks the user's
// viewing intent (page, page size, type filters, search text, committed
// result), fetches what that intent requires, and derives an immutable
// View snapshot on demand. The UI never talks to the network directly for
// listing; it mutates the engine and re-snapshots.
//
// # Viewing Modes
//
// The engine is always in exactly one of three modes:
//
//   - Browse: one server page at a time, locally narrowed by type filters
//   - Live filter: the local mirror narrowed by a French-name prefix as
//     the user types, repaged locally
//   - Committed: exactly one explicitly selected search result
//
// Typing a query enters live-filter mode; committing a result enters
// committed mode; clearing the search returns to browse on page one.
//
// # The Mirror
//
// Live filtering and suggestions need the whole collection, so the engine
// keeps a local mirror fetched in pages of fifty, capped at ten pages.
// Collections beyond five hundred entries are silently truncated; the cap
// is a stand-in for a server-side search endpoint. Suggestions are derived
// purely from the mirror on every keystroke — never a network call — and
// are capped at eight, in mirror order.
//
// # Consistency
//
// Every fetch captures a monotonic token under the lock, performs the
// network call unlocked, and applies the response only if its token is
// still the latest. Any state mutation (page change, filter toggle, size
// change, new query) bumps the token, so a response that raced a mutation
// is discarded rather than clobbering newer intent. Failed fetches keep
// the previous visible state and surface the error on the snapshot.
//
// Page numbers are clamped down — never up — at snapshot time, and only
// against known totals, so a collection that shrank under the cursor snaps
// to its new last page.
package collection
