package favorites

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Store is the durable set of favorited entry ids. The file is re-read on
// every operation so concurrent writers (another process on the same
// file) settle on last-writer-wins, matching the storage medium's own
// atomicity for single-key read-modify-write.
type Store struct {
	mu   sync.Mutex
	path string

	subs    map[int]func()
	nextSub int
}

// Open builds a Store backed by the given file path. The file does not
// need to exist yet.
func Open(path string) *Store {
	return &Store{
		path: path,
		subs: make(map[int]func()),
	}
}

// All returns the favorited ids in ascending order. Absent or malformed
// storage reads as empty, never as an error.
func (s *Store) All() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.read()
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of favorited ids.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.read())
}

// Contains reports whether the id is favorited.
func (s *Store) Contains(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.read()[id]
	return ok
}

// Add favorites the id. Returns true when the id was newly added, false
// when it was already present; duplicates never notify.
func (s *Store) Add(id int) bool {
	s.mu.Lock()
	set := s.read()
	if _, ok := set[id]; ok {
		s.mu.Unlock()
		return false
	}
	set[id] = struct{}{}
	s.write(set)
	observers := s.observers()
	s.mu.Unlock()

	notify(observers)
	return true
}

// Remove unfavorites the id. Always succeeds; removing an absent id still
// returns true but does not notify.
func (s *Store) Remove(id int) bool {
	s.mu.Lock()
	set := s.read()
	if _, ok := set[id]; !ok {
		s.mu.Unlock()
		return true
	}
	delete(set, id)
	s.write(set)
	observers := s.observers()
	s.mu.Unlock()

	notify(observers)
	return true
}

// Toggle flips the id's membership and returns the new state
// (true = now favorited).
func (s *Store) Toggle(id int) bool {
	if s.Contains(id) {
		s.Remove(id)
		return false
	}
	s.Add(id)
	return true
}

// Prune removes every given id, notifying at most once. Used when entries
// are deleted from the remote collection.
func (s *Store) Prune(ids ...int) {
	s.mu.Lock()
	set := s.read()
	changed := false
	for _, id := range ids {
		if _, ok := set[id]; ok {
			delete(set, id)
			changed = true
		}
	}
	if !changed {
		s.mu.Unlock()
		return
	}
	s.write(set)
	observers := s.observers()
	s.mu.Unlock()

	notify(observers)
}

// Subscribe registers an observer invoked after every mutation. The
// returned function unsubscribes it. Observers run synchronously, outside
// the store's lock, in no particular order.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// read deserializes the stored id array. Callers hold s.mu.
func (s *Store) read() map[int]struct{} {
	set := make(map[int]struct{})

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return set // absent storage is an empty set
	}

	var ids []int
	if err := json.Unmarshal(raw, &ids); err != nil {
		return set // corrupt storage self-heals to empty
	}
	for _, id := range ids {
		if id > 0 {
			set[id] = struct{}{}
		}
	}
	return set
}

// write serializes the set as a JSON array of ids. Callers hold s.mu.
// Write failures are swallowed: favorites are a convenience, never worth
// crashing over, and the next mutation retries from the file anyway.
func (s *Store) write(set map[int]struct{}) {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return
	}
	_ = os.WriteFile(s.path, raw, 0o644)
}

func (s *Store) observers() []func() {
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	return fns
}

func notify(observers []func()) {
	for _, fn := range observers {
		fn()
	}
}

// DefaultFileName is the storage file name under the data directory.
const DefaultFileName = "favorites.json"

// DefaultPath joins the data directory with the storage file name.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, DefaultFileName)
}
