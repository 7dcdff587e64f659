package collection

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mlegall/pokedeck/internal/pokeapi"
)

// Source is the slice of the remote API the engine needs.
type Source interface {
	List(ctx context.Context, page, limit int) (pokeapi.Page, error)
}

// Mode identifies the engine's viewing mode. The three modes are mutually
// exclusive.
type Mode int

const (
	// ModeBrowse shows one server page, locally filtered by type.
	ModeBrowse Mode = iota
	// ModeLiveFilter shows the mirror filtered by the typed query.
	ModeLiveFilter
	// ModeCommitted shows exactly one explicitly selected result.
	ModeCommitted
)

const (
	// DefaultPageSize is used until the user picks another size.
	DefaultPageSize = 20

	// SuggestionCap bounds the suggestion list per keystroke.
	SuggestionCap = 8

	// The mirror is fetched in pages of mirrorPageSize up to
	// mirrorMaxPages. Collections beyond the cap are silently truncated;
	// replacing the mirror with a server-side search endpoint lifts it.
	mirrorPageSize = 50
	mirrorMaxPages = 10
)

// PageSizes are the selectable page sizes, in display order.
var PageSizes = []int{10, 20, 30, 50}

// View is an immutable snapshot of the visible collection state.
type View struct {
	Mode       Mode
	Items      []pokeapi.Pokemon
	PageNumber int
	PageSize   int
	TotalPages int
	TotalCount int
	Filters    []string
	SearchText string
	LastError  error
	MirrorSize int
}

// Engine owns the paged, filtered, searched view over the remote
// collection. All methods are safe for concurrent use; fetches hold no
// lock during network I/O and discard responses that a later state change
// has superseded.
type Engine struct {
	source Source
	log    zerolog.Logger

	mu         sync.Mutex
	pageNumber int
	pageSize   int
	filters    map[string]struct{}
	searchText string
	committed  *pokeapi.Pokemon

	page       []pokeapi.Pokemon // last successfully fetched browse page
	totalPages int               // server totals, browse mode only
	totalCount int
	mirror     []pokeapi.Pokemon
	lastErr    error

	// Monotonic request tokens, one per state slot. A response is applied
	// only when its token still matches the latest issued one.
	pageToken   uint64
	mirrorToken uint64
}

// New builds an Engine over the given source.
func New(source Source, log zerolog.Logger) *Engine {
	return &Engine{
		source:     source,
		log:        log,
		pageNumber: 1,
		pageSize:   DefaultPageSize,
		filters:    make(map[string]struct{}),
	}
}

// RefreshPage fetches the current browse page. A failure keeps the
// previous visible state and is recorded on the snapshot.
func (e *Engine) RefreshPage(ctx context.Context) error {
	e.mu.Lock()
	e.pageToken++
	token := e.pageToken
	page, size := e.pageNumber, e.pageSize
	e.mu.Unlock()

	res, err := e.source.List(ctx, page, size)

	e.mu.Lock()
	defer e.mu.Unlock()
	if token != e.pageToken {
		return nil // superseded by a later page request
	}
	if err != nil {
		e.lastErr = err
		e.log.Warn().Err(err).Int("page", page).Int("limit", size).Msg("page fetch failed")
		return err
	}
	e.page = res.Items
	e.totalPages = res.TotalPages
	e.totalCount = res.TotalCount
	e.lastErr = nil
	return nil
}

// RefreshMirror refetches the full mirror in pages of fifty, stopping at
// the cap. A failure keeps the previous mirror.
func (e *Engine) RefreshMirror(ctx context.Context) error {
	e.mu.Lock()
	e.mirrorToken++
	token := e.mirrorToken
	e.mu.Unlock()

	var all []pokeapi.Pokemon
	for page := 1; page <= mirrorMaxPages; page++ {
		res, err := e.source.List(ctx, page, mirrorPageSize)
		if err != nil {
			e.mu.Lock()
			defer e.mu.Unlock()
			if token == e.mirrorToken {
				e.lastErr = err
				e.log.Warn().Err(err).Int("page", page).Msg("mirror fetch failed")
			}
			return err
		}
		all = append(all, res.Items...)
		if page >= res.TotalPages {
			break
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if token != e.mirrorToken {
		return nil
	}
	e.mirror = all
	e.lastErr = nil
	return nil
}

// Invalidate refetches the mirror and reconciles dependent slots against
// it: a committed result is re-resolved (updated in place, or dropped back
// to browse mode when its entry is gone), and in browse mode the current
// page is refetched, clamped against the fresh totals so the view never
// renders an out-of-range page.
func (e *Engine) Invalidate(ctx context.Context) error {
	mirrorErr := e.RefreshMirror(ctx)
	if mirrorErr == nil {
		e.reconcileCommitted()
	}

	e.mu.Lock()
	browsing := e.committed == nil && strings.TrimSpace(e.searchText) == ""
	e.mu.Unlock()

	if !browsing {
		return mirrorErr
	}
	if err := e.RefreshPage(ctx); err != nil {
		return err
	}

	// The collection may have shrunk below the current page, in which
	// case the fetch above returned an empty out-of-range page. Clamp to
	// the fresh totals and fetch the real last page.
	e.mu.Lock()
	clamped := e.totalPages > 0 && e.pageNumber > e.totalPages
	if clamped {
		e.pageNumber = e.totalPages
	}
	e.mu.Unlock()
	if clamped {
		if err := e.RefreshPage(ctx); err != nil {
			return err
		}
	}
	return mirrorErr
}

// reconcileCommitted re-resolves the committed entry against the mirror.
// A mutated entry is replaced with its fresh copy; an entry the mirror no
// longer holds was deleted, so the search is cleared and the engine falls
// back to browse mode on page one.
func (e *Engine) reconcileCommitted() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.committed == nil {
		return
	}
	for _, p := range e.mirror {
		if p.ID == e.committed.ID {
			fresh := p
			e.committed = &fresh
			return
		}
	}
	e.committed = nil
	e.searchText = ""
	e.pageNumber = 1
	e.pageToken++
}

// SetPage moves to the given page. Values below one are ignored; values
// beyond the last page are clamped at snapshot time, never up.
func (e *Engine) SetPage(n int) {
	if n < 1 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pageNumber = n
	e.pageToken++ // in-flight page responses are now stale
}

// NextPage advances one page when not already on the last page of the
// active mode's view.
func (e *Engine) NextPage() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pageNumber < e.modeTotalPagesLocked() {
		e.pageNumber++
		e.pageToken++
	}
}

// PrevPage moves back one page when not on the first.
func (e *Engine) PrevPage() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pageNumber > 1 {
		e.pageNumber--
		e.pageToken++
	}
}

// SetPageSize switches the page size and resets to page one. Sizes
// outside the selectable set are rejected.
func (e *Engine) SetPageSize(n int) error {
	valid := false
	for _, s := range PageSizes {
		if s == n {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("page size %d not in %v", n, PageSizes)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if n != e.pageSize {
		e.pageSize = n
		e.pageNumber = 1
		e.pageToken++
	}
	return nil
}

// PageSize returns the active page size.
func (e *Engine) PageSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pageSize
}

// ToggleFilter flips a type tag in the active filter set and resets to
// page one. Matching is case-insensitive.
func (e *Engine) ToggleFilter(tag string) {
	key := strings.ToLower(strings.TrimSpace(tag))
	if key == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.filters[key]; ok {
		delete(e.filters, key)
	} else {
		e.filters[key] = struct{}{}
	}
	e.pageNumber = 1
	e.pageToken++
}

// ClearFilters empties the filter set and resets to page one.
func (e *Engine) ClearFilters() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.filters) == 0 {
		return
	}
	e.filters = make(map[string]struct{})
	e.pageNumber = 1
	e.pageToken++
}

// HasFilter reports whether the tag is in the active filter set.
func (e *Engine) HasFilter(tag string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.filters[strings.ToLower(strings.TrimSpace(tag))]
	return ok
}

// SetSearchText updates the live query. Any change resets to page one and
// drops a previously committed result; an empty query returns to browse
// mode.
func (e *Engine) SetSearchText(q string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if q == e.searchText {
		return
	}
	e.searchText = q
	e.pageNumber = 1
	e.committed = nil
	e.pageToken++
}

// Commit enters committed-search mode: the visible set becomes exactly
// the given entry until the search is cleared.
func (e *Engine) Commit(p pokeapi.Pokemon) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.committed = &p
}

// ClearSearch leaves live-filter or committed mode and returns to browse
// mode on page one.
func (e *Engine) ClearSearch() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.searchText == "" && e.committed == nil {
		return
	}
	e.searchText = ""
	e.committed = nil
	e.pageNumber = 1
	e.pageToken++
}

// Suggestions derives up to SuggestionCap entries whose French name
// starts with the trimmed, case-folded query. Pure and synchronous:
// recomputed from the mirror on every keystroke, no network call.
func (e *Engine) Suggestions(query string) []pokeapi.Pokemon {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var out []pokeapi.Pokemon
	for _, p := range e.mirror {
		if strings.HasPrefix(strings.ToLower(p.Name.French), q) {
			out = append(out, p)
			if len(out) == SuggestionCap {
				break
			}
		}
	}
	return out
}

// ResolveFavorites maps favorite ids onto mirror entries, preserving
// mirror order. Ids that no longer resolve — deleted entries with a
// dangling favorite — are silently dropped.
func (e *Engine) ResolveFavorites(ids []int) []pokeapi.Pokemon {
	want := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var out []pokeapi.Pokemon
	for _, p := range e.mirror {
		if _, ok := want[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Snapshot derives the current visible state. Page numbers that exceed
// the recomputed page count are clamped down — never up — and the clamp
// sticks for subsequent fetches.
func (e *Engine) Snapshot() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := View{
		PageSize:   e.pageSize,
		Filters:    e.filterListLocked(),
		SearchText: e.searchText,
		LastError:  e.lastErr,
		MirrorSize: len(e.mirror),
	}

	switch {
	case e.committed != nil:
		v.Mode = ModeCommitted
		v.Items = []pokeapi.Pokemon{*e.committed}
		v.PageNumber = 1
		v.TotalPages = 1
		v.TotalCount = 1

	case strings.TrimSpace(e.searchText) != "":
		v.Mode = ModeLiveFilter
		filtered := e.liveFilterLocked()
		v.TotalCount = len(filtered)
		v.TotalPages = pageCount(len(filtered), e.pageSize)
		if e.pageNumber > v.TotalPages {
			e.pageNumber = v.TotalPages
		}
		v.PageNumber = e.pageNumber
		start := (v.PageNumber - 1) * e.pageSize
		end := min(start+e.pageSize, len(filtered))
		if start < end {
			v.Items = filtered[start:end]
		}

	default:
		v.Mode = ModeBrowse
		v.TotalCount = e.totalCount
		v.TotalPages = e.totalPagesLocked()
		// Clamp only against known server totals; before the first
		// successful fetch the page number is left alone.
		if e.totalPages > 0 && e.pageNumber > e.totalPages {
			e.pageNumber = e.totalPages
		}
		v.PageNumber = e.pageNumber
		for _, p := range e.page {
			if e.matchesFiltersLocked(p) {
				v.Items = append(v.Items, p)
			}
		}
	}
	return v
}

// liveFilterLocked applies the French-name prefix and the type predicate
// to the mirror. Callers hold e.mu.
func (e *Engine) liveFilterLocked() []pokeapi.Pokemon {
	q := strings.ToLower(strings.TrimSpace(e.searchText))
	var out []pokeapi.Pokemon
	for _, p := range e.mirror {
		if !strings.HasPrefix(strings.ToLower(p.Name.French), q) {
			continue
		}
		if !e.matchesFiltersLocked(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchesFiltersLocked implements the OR predicate: an entry qualifies
// when any of its types, case-insensitively, is in the filter set.
func (e *Engine) matchesFiltersLocked(p pokeapi.Pokemon) bool {
	if len(e.filters) == 0 {
		return true
	}
	for _, t := range p.Types {
		if _, ok := e.filters[strings.ToLower(t)]; ok {
			return true
		}
	}
	return false
}

// modeTotalPagesLocked returns the page count of the active mode's view.
// Callers hold e.mu.
func (e *Engine) modeTotalPagesLocked() int {
	switch {
	case e.committed != nil:
		return 1
	case strings.TrimSpace(e.searchText) != "":
		return pageCount(len(e.liveFilterLocked()), e.pageSize)
	default:
		return e.totalPagesLocked()
	}
}

func (e *Engine) totalPagesLocked() int {
	if e.totalPages < 1 {
		return 1
	}
	return e.totalPages
}

func (e *Engine) filterListLocked() []string {
	if len(e.filters) == 0 {
		return nil
	}
	out := make([]string, 0, len(e.filters))
	for tag := range e.filters {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// pageCount is ceil(total/size) with a floor of one page.
func pageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}
