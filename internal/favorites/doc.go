// Package favorites persists the user's favorite entry ids.
//
// # Storage Model
//
// Favorites are a JSON array of positive integers in a single file,
// typically ~/.local/share/pokedeck/favorites.json. The store re-reads the
// file on every operation and rewrites it after every mutation, so
// concurrent processes converge on last-writer-wins without any locking
// protocol. A corrupt or missing file reads as an empty set and is
// repaired by the next successful write.
//
// # Observers
//
// Subscribe registers a callback invoked synchronously after every
// effective mutation — adds and removes that changed the set, but not
// duplicate adds or removes of absent ids. Prune batches several removals
// into a single notification. Callbacks run outside the store's lock, so
// they may call back into the store.
//
// Only mutations made through this store instance notify. There is no
// file watcher: writes by other processes are picked up by the next read,
// not announced to observers.
package favorites
