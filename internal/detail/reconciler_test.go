package detail

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlegall/pokedeck/internal/favorites"
	"github.com/mlegall/pokedeck/internal/pokeapi"
)

type fakeAPI struct {
	updateErr error
	deleteErr error

	gotUpdateID    int
	gotUpdateDraft pokeapi.Draft
	gotDeleteID    int

	// serverEntry is what Update returns on success, standing in for the
	// server's own view of the entry.
	serverEntry pokeapi.Pokemon
}

func (f *fakeAPI) Update(_ context.Context, id int, draft pokeapi.Draft) (pokeapi.Pokemon, error) {
	f.gotUpdateID = id
	f.gotUpdateDraft = draft
	if f.updateErr != nil {
		return pokeapi.Pokemon{}, f.updateErr
	}
	return f.serverEntry, nil
}

func (f *fakeAPI) Delete(_ context.Context, id int) error {
	f.gotDeleteID = id
	return f.deleteErr
}

func entry() pokeapi.Pokemon {
	return pokeapi.Pokemon{
		ID:    25,
		Name:  pokeapi.LocalizedName{English: "Pikachu", French: "Pikachu"},
		Types: []string{"electric"},
		Base:  pokeapi.Stats{HP: 35, Attack: 55, Defense: 40, SpecialAttack: 50, SpecialDefense: 50, Speed: 90},
		Image: "https://img.example.com/25.png",
	}
}

func newTestReconciler(t *testing.T, api API) (*Reconciler, *favorites.Store, *int) {
	t.Helper()
	favs := favorites.Open(filepath.Join(t.TempDir(), "favorites.json"))
	invalidations := 0
	r := New(api, favs, entry(), func() { invalidations++ })
	return r, favs, &invalidations
}

func TestReconciler_BeginEditSnapshotsAuthoritative(t *testing.T) {
	r, _, _ := newTestReconciler(t, &fakeAPI{})

	_, editing := r.Draft()
	assert.False(t, editing)
	assert.False(t, r.Dirty())

	r.BeginEdit()
	d, editing := r.Draft()
	require.True(t, editing)
	assert.True(t, r.Dirty())
	assert.Equal(t, "Pikachu", d.Name.English)

	// Draft edits leave the authoritative state untouched until commit.
	require.NoError(t, r.SetName("english", "Pikachu EX"))
	require.NoError(t, r.SetStat("HP", 60))
	assert.Equal(t, "Pikachu", r.Entry().Name.English)
	assert.Equal(t, 35, r.Entry().Base.HP)
}

func TestReconciler_FieldEditsRequireEditMode(t *testing.T) {
	r, _, _ := newTestReconciler(t, &fakeAPI{})

	assert.Error(t, r.SetName("english", "x"))
	assert.Error(t, r.SetStat("HP", 10))
	assert.Error(t, r.SetImage("https://x.example.com/a.png"))

	r.BeginEdit()
	assert.Error(t, r.SetName("klingon", "x"))
	assert.Error(t, r.SetStat("Luck", 7))
	assert.Error(t, r.SetType(2, "fire"))
	assert.NoError(t, r.SetType(1, "flying"))
}

func TestReconciler_CommitReplacesAuthoritativeWithServerEntry(t *testing.T) {
	server := entry()
	server.Name.English = "Pikachu (server)"
	server.Base.HP = 61 // server normalized the submitted 60
	api := &fakeAPI{serverEntry: server}
	r, _, invalidations := newTestReconciler(t, api)

	r.BeginEdit()
	require.NoError(t, r.SetName("english", "Pikachu EX"))
	require.NoError(t, r.SetStat("HP", 60))
	require.NoError(t, r.Commit(context.Background()))

	// Server response wins over the local draft.
	assert.Equal(t, "Pikachu (server)", r.Entry().Name.English)
	assert.Equal(t, 61, r.Entry().Base.HP)
	assert.False(t, r.Dirty(), "commit clears the draft")
	assert.Equal(t, 1, *invalidations)
	assert.Equal(t, 25, api.gotUpdateID)
	assert.Equal(t, "Pikachu EX", api.gotUpdateDraft.Name.English)
}

func TestReconciler_CommitFailurePreservesDraftAndAuthoritative(t *testing.T) {
	api := &fakeAPI{updateErr: errors.New("network down")}
	r, _, invalidations := newTestReconciler(t, api)

	r.BeginEdit()
	require.NoError(t, r.SetName("english", "Pikachu EX"))

	err := r.Commit(context.Background())
	require.Error(t, err)

	d, editing := r.Draft()
	require.True(t, editing, "failed commit keeps the draft for retry")
	assert.Equal(t, "Pikachu EX", d.Name.English)
	assert.Equal(t, "Pikachu", r.Entry().Name.English, "authoritative state unchanged")
	assert.Zero(t, *invalidations)
}

func TestReconciler_CommitValidatesBeforeNetwork(t *testing.T) {
	api := &fakeAPI{}
	r, _, _ := newTestReconciler(t, api)

	r.BeginEdit()
	require.NoError(t, r.SetStat("HP", 0))

	err := r.Commit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 1 and 255")
	assert.Zero(t, api.gotUpdateID, "validation failure never reaches the network")
	assert.True(t, r.Dirty())
}

func TestReconciler_CommitWithoutEditFails(t *testing.T) {
	r, _, _ := newTestReconciler(t, &fakeAPI{})
	assert.Error(t, r.Commit(context.Background()))
}

func TestReconciler_DeletePrunesFavoriteAndInvalidates(t *testing.T) {
	api := &fakeAPI{}
	r, favs, invalidations := newTestReconciler(t, api)
	favs.Add(25)

	require.NoError(t, r.Delete(context.Background()))
	assert.Equal(t, 25, api.gotDeleteID)
	assert.False(t, favs.Contains(25), "delete prunes the dangling favorite")
	assert.Equal(t, 1, *invalidations)
}

func TestReconciler_DeleteFailureLeavesEverythingIntact(t *testing.T) {
	api := &fakeAPI{deleteErr: errors.New("forbidden")}
	r, favs, invalidations := newTestReconciler(t, api)
	favs.Add(25)
	r.BeginEdit()

	require.Error(t, r.Delete(context.Background()))
	assert.True(t, favs.Contains(25))
	assert.True(t, r.Dirty(), "entry remains editable after a failed delete")
	assert.Zero(t, *invalidations)
}

func TestReconciler_ToggleFavoriteIsLocal(t *testing.T) {
	api := &fakeAPI{updateErr: errors.New("server is down")}
	r, favs, _ := newTestReconciler(t, api)

	assert.True(t, r.ToggleFavorite(), "first toggle favorites")
	assert.True(t, r.Favorite())
	assert.True(t, favs.Contains(25))
	assert.False(t, r.ToggleFavorite())
	assert.False(t, r.Favorite())
	assert.Zero(t, api.gotUpdateID, "favorites never touch the network")
}

func TestReconciler_CancelEditDiscardsDraft(t *testing.T) {
	r, _, _ := newTestReconciler(t, &fakeAPI{})
	r.BeginEdit()
	require.NoError(t, r.SetImage("https://img.example.com/new.png"))
	r.CancelEdit()
	assert.False(t, r.Dirty())
	assert.Equal(t, "https://img.example.com/25.png", r.Entry().Image)
}
