// Package detail reconciles a single entry's server state with an
// in-progress edit draft.
package detail

import (
	"context"
	"fmt"
	"sync"

	"github.com/mlegall/pokedeck/internal/favorites"
	"github.com/mlegall/pokedeck/internal/pokeapi"
)

// API is the slice of the remote client the reconciler needs.
type API interface {
	Update(ctx context.Context, id int, draft pokeapi.Draft) (pokeapi.Pokemon, error)
	Delete(ctx context.Context, id int) error
}

// Reconciler holds one entry's authoritative (server) state plus an
// optional edit draft. The draft never leaks into the authoritative state:
// a commit replaces it with whatever the server returns.
type Reconciler struct {
	api       API
	favorites *favorites.Store

	// onInvalidate is called after any successful mutation so dependent
	// cached views can refetch. May be nil.
	onInvalidate func()

	mu            sync.Mutex
	authoritative pokeapi.Pokemon
	draft         *pokeapi.Draft
}

// New builds a Reconciler for the given entry. onInvalidate may be nil.
func New(api API, favs *favorites.Store, entry pokeapi.Pokemon, onInvalidate func()) *Reconciler {
	return &Reconciler{
		api:           api,
		favorites:     favs,
		onInvalidate:  onInvalidate,
		authoritative: entry,
	}
}

// Entry returns the authoritative entry.
func (r *Reconciler) Entry() pokeapi.Pokemon {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.authoritative
}

// Dirty reports whether an edit draft is in progress.
func (r *Reconciler) Dirty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draft != nil
}

// Draft returns a copy of the in-progress draft, or false when not
// editing.
func (r *Reconciler) Draft() (pokeapi.Draft, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.draft == nil {
		return pokeapi.Draft{}, false
	}
	return *r.draft, true
}

// BeginEdit snapshots the authoritative entry's editable fields into a
// fresh draft. Re-entering edit mode restarts from the authoritative
// state.
func (r *Reconciler) BeginEdit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := pokeapi.DraftFrom(r.authoritative)
	r.draft = &d
}

// CancelEdit discards the draft without touching the authoritative state.
func (r *Reconciler) CancelEdit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draft = nil
}

// SetName updates one locale of the draft's name. Purely local.
func (r *Reconciler) SetName(locale, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.draft == nil {
		return errNotEditing
	}
	switch locale {
	case "english":
		r.draft.Name.English = value
	case "french":
		r.draft.Name.French = value
	case "japanese":
		r.draft.Name.Japanese = value
	case "chinese":
		r.draft.Name.Chinese = value
	default:
		return fmt.Errorf("unknown name locale %q", locale)
	}
	return nil
}

// SetType updates one type slot of the draft. Slots beyond the current
// count grow the slice up to the two-type maximum.
func (r *Reconciler) SetType(index int, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.draft == nil {
		return errNotEditing
	}
	if index < 0 || index > 1 {
		return fmt.Errorf("type slot %d out of range", index)
	}
	for len(r.draft.Types) <= index {
		r.draft.Types = append(r.draft.Types, "")
	}
	r.draft.Types[index] = value
	return nil
}

// SetStat updates one named stat of the draft. Range checking happens at
// commit, not here.
func (r *Reconciler) SetStat(name string, value int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.draft == nil {
		return errNotEditing
	}
	switch name {
	case "HP":
		r.draft.Base.HP = value
	case "Attack":
		r.draft.Base.Attack = value
	case "Defense":
		r.draft.Base.Defense = value
	case "SpecialAttack":
		r.draft.Base.SpecialAttack = value
	case "SpecialDefense":
		r.draft.Base.SpecialDefense = value
	case "Speed":
		r.draft.Base.Speed = value
	default:
		return fmt.Errorf("unknown stat %q", name)
	}
	return nil
}

// SetImage updates the draft's image URL. Purely local.
func (r *Reconciler) SetImage(value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.draft == nil {
		return errNotEditing
	}
	r.draft.Image = value
	return nil
}

// Commit validates the draft and sends it to the server. On success the
// authoritative state becomes the server-returned entry, the draft is
// cleared, and dependent views are invalidated. On failure the draft is
// preserved so nothing the user typed is lost.
func (r *Reconciler) Commit(ctx context.Context) error {
	r.mu.Lock()
	if r.draft == nil {
		r.mu.Unlock()
		return errNotEditing
	}
	draft := *r.draft
	id := r.authoritative.ID
	r.mu.Unlock()

	draft.Normalize()
	if err := draft.ValidateEdit(); err != nil {
		return err
	}

	updated, err := r.api.Update(ctx, id, draft)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.authoritative = updated
	r.draft = nil
	r.mu.Unlock()

	if r.onInvalidate != nil {
		r.onInvalidate()
	}
	return nil
}

// Delete removes the entry remotely. On success the favorite id is
// pruned and dependent views are invalidated; on failure the entry stays
// fully intact and editable.
func (r *Reconciler) Delete(ctx context.Context) error {
	r.mu.Lock()
	id := r.authoritative.ID
	r.mu.Unlock()

	if err := r.api.Delete(ctx, id); err != nil {
		return err
	}

	if r.favorites != nil {
		r.favorites.Prune(id)
	}
	if r.onInvalidate != nil {
		r.onInvalidate()
	}
	return nil
}

// ToggleFavorite flips the entry's favorite state. Purely local, no
// network round-trip, independent of commit or delete outcome.
func (r *Reconciler) ToggleFavorite() bool {
	r.mu.Lock()
	id := r.authoritative.ID
	r.mu.Unlock()
	return r.favorites.Toggle(id)
}

// Favorite reports whether the entry is currently favorited.
func (r *Reconciler) Favorite() bool {
	r.mu.Lock()
	id := r.authoritative.ID
	r.mu.Unlock()
	return r.favorites.Contains(id)
}

var errNotEditing = fmt.Errorf("no edit in progress")
