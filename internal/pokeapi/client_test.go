package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func samplePokemon(id int) Pokemon {
	return Pokemon{
		ID:    id,
		Name:  LocalizedName{English: "Pikachu", French: "Pikachu", Japanese: "ピカチュウ"},
		Types: []string{"electric"},
		Base:  Stats{HP: 35, Attack: 55, Defense: 40, SpecialAttack: 50, SpecialDefense: 50, Speed: 90},
		Image: "https://img.example.com/25.png",
	}
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("api.example.com:8080")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "api.example.com:8080" {
		t.Fatalf("base = %q, want http scheme and host preserved", u.String())
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_ListEncodesQueryAndDecodesPage(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		if r.URL.Path != "/pokemons" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(listResponse{
			Data:       []Pokemon{samplePokemon(25)},
			Pagination: pageInfo{TotalPages: 8, TotalPokemons: 151},
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	page, err := c.List(ctx, 3, 20)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if gotQuery.Get("page") != "3" || gotQuery.Get("limit") != "20" {
		t.Fatalf("List query = %v, want page=3 limit=20", gotQuery)
	}
	if len(page.Items) != 1 || page.Items[0].ID != 25 {
		t.Fatalf("List items = %#v, want 1 item id=25", page.Items)
	}
	if page.TotalPages != 8 || page.TotalCount != 151 {
		t.Fatalf("List totals = %d/%d, want 8/151", page.TotalPages, page.TotalCount)
	}
	if !strings.HasPrefix(gotUserAgent, "pokedeck/") {
		t.Fatalf("User-Agent = %q, want pokedeck/*", gotUserAgent)
	}
}

func TestClient_SearchByNameEscapesPath(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(samplePokemon(25))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	got, err := c.SearchByName(context.Background(), "Mr. Mime")
	if err != nil {
		t.Fatalf("SearchByName returned error: %v", err)
	}
	if got.ID != 25 {
		t.Fatalf("SearchByName id = %d, want 25", got.ID)
	}
	if !strings.HasPrefix(gotPath, "/pokemons/search/") || strings.Contains(gotPath, " ") {
		t.Fatalf("path = %q, want escaped search path", gotPath)
	}

	if _, err := c.SearchByName(context.Background(), "   "); err == nil {
		t.Fatal("SearchByName with blank name returned nil error, want error")
	}
}

func TestClient_CreateThenGetRoundTrip(t *testing.T) {
	t.Parallel()

	stored := map[int]Pokemon{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/pokemons":
			var draft Draft
			if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			created := Pokemon{ID: draft.ID, Name: draft.Name, Types: draft.Types, Base: draft.Base, Image: draft.Image}
			stored[created.ID] = created
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(created)
		case r.Method == http.MethodGet && r.URL.Path == "/pokemons/152":
			_ = json.NewEncoder(w).Encode(stored[152])
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	draft := DraftFrom(samplePokemon(152))
	created, err := c.Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != 152 {
		t.Fatalf("Create id = %d, want 152", created.ID)
	}

	got, err := c.GetByID(context.Background(), 152)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.Name.English != draft.Name.English || got.Image != draft.Image || got.Base != draft.Base {
		t.Fatalf("round trip mismatch: got %#v, want fields of %#v", got, draft)
	}
}

func TestClient_UpdateOmitsIDFromBody(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/pokemons/25" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(samplePokemon(25))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	draft := DraftFrom(samplePokemon(25))
	if _, err := c.Update(context.Background(), 25, draft); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if _, present := gotBody["id"]; present {
		t.Fatalf("update body carried id: %v", gotBody)
	}
	if _, present := gotBody["name"]; !present {
		t.Fatalf("update body missing name: %v", gotBody)
	}
}

func TestClient_ErrorNormalization(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pokemons/404":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"pokemon introuvable"}`))
		case "/pokemons/500":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "/pokemons/notjson":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	// Structured message extracted from the body.
	getErr := c.do(context.Background(), http.MethodGet, "/pokemons/404", nil, nil)
	var apiErr *APIError
	if !errors.As(getErr, &apiErr) {
		t.Fatalf("error = %v (%T), want *APIError", getErr, getErr)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "pokemon introuvable" {
		t.Fatalf("APIError = %#v, want 404 with body message", apiErr)
	}

	// Unstructured body falls back to a status-derived message.
	getErr = c.do(context.Background(), http.MethodGet, "/pokemons/500", nil, nil)
	if !errors.As(getErr, &apiErr) {
		t.Fatalf("error = %v (%T), want *APIError", getErr, getErr)
	}
	if apiErr.StatusCode != http.StatusInternalServerError || !strings.Contains(apiErr.Message, "500") {
		t.Fatalf("APIError = %#v, want status fallback message", apiErr)
	}

	// Malformed success payloads surface as decode errors, not APIErrors.
	var dest Pokemon
	decodeErr := c.do(context.Background(), http.MethodGet, "/pokemons/notjson", nil, &dest)
	if decodeErr == nil || !strings.Contains(decodeErr.Error(), "decode response") {
		t.Fatalf("error = %v, want decode response error", decodeErr)
	}
}

func TestPokemon_SoundURLDerivesDefault(t *testing.T) {
	p := samplePokemon(25)
	if got := p.SoundURL(); !strings.HasSuffix(got, "/25.ogg") {
		t.Fatalf("SoundURL = %q, want derived /25.ogg", got)
	}
	p.Sound = "https://cries.example.com/custom.ogg"
	if got := p.SoundURL(); got != p.Sound {
		t.Fatalf("SoundURL = %q, want explicit sound kept", got)
	}
}
