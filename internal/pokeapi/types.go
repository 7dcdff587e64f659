package pokeapi

import (
	"fmt"
	"strings"
)

// defaultCryURLFormat is used when an entry carries no explicit sound URL.
const defaultCryURLFormat = "https://raw.githubusercontent.com/PokeAPI/cries/main/cries/pokemon/latest/%d.ogg"

// LocalizedName holds the display names of a Pokémon per locale.
// English is the only required locale.
type LocalizedName struct {
	English  string `json:"english"`
	French   string `json:"french,omitempty"`
	Japanese string `json:"japanese,omitempty"`
	Chinese  string `json:"chinese,omitempty"`
}

// Stats is the fixed set of six base statistics. Each value is an
// integer in [1,255].
type Stats struct {
	HP             int `json:"HP"`
	Attack         int `json:"Attack"`
	Defense        int `json:"Defense"`
	SpecialAttack  int `json:"SpecialAttack"`
	SpecialDefense int `json:"SpecialDefense"`
	Speed          int `json:"Speed"`
}

// Pokemon mirrors one catalog entry as returned by the API.
type Pokemon struct {
	ID    int           `json:"id"`
	Name  LocalizedName `json:"name"`
	Types []string      `json:"type"`
	Base  Stats         `json:"base"`
	Image string        `json:"image"`
	Sound string        `json:"sound,omitempty"`
}

// PrimaryType returns the first type tag, which drives display ordering
// and color derivation. Empty when the entry carries no types.
func (p Pokemon) PrimaryType() string {
	if len(p.Types) == 0 {
		return ""
	}
	return p.Types[0]
}

// HasType reports whether the entry carries the given type tag,
// case-insensitively.
func (p Pokemon) HasType(tag string) bool {
	for _, t := range p.Types {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// SoundURL returns the entry's cry URL, deriving the default one from the
// id when no explicit sound is set.
func (p Pokemon) SoundURL() string {
	if strings.TrimSpace(p.Sound) != "" {
		return p.Sound
	}
	return fmt.Sprintf(defaultCryURLFormat, p.ID)
}

// listResponse mirrors the payload returned by GET /pokemons.
type listResponse struct {
	Data       []Pokemon `json:"data"`
	Pagination pageInfo  `json:"pagination"`
}

type pageInfo struct {
	TotalPages    int `json:"totalPages"`
	TotalPokemons int `json:"totalPokemons"`
}

// Page is one page of the remote collection together with the
// server-reported totals.
type Page struct {
	Items      []Pokemon
	TotalPages int
	TotalCount int
}
