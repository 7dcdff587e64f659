package pokeapi

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Stat bounds shared by create and edit validation.
const (
	StatMin = 1
	StatMax = 255

	maxNameLength = 50
	maxTypeLength = 20
	maxTypes      = 2
)

// Draft carries the editable fields of an entry. For creation it also
// carries the caller-assigned id; updates omit it.
type Draft struct {
	ID    int           `json:"id,omitempty"`
	Name  LocalizedName `json:"name"`
	Types []string      `json:"type"`
	Base  Stats         `json:"base"`
	Image string        `json:"image"`
}

// DraftFrom snapshots an entry's editable fields into a Draft. The types
// slice is copied so edits never reach the source entry.
func DraftFrom(p Pokemon) Draft {
	types := make([]string, len(p.Types))
	copy(types, p.Types)
	return Draft{
		ID:    p.ID,
		Name:  p.Name,
		Types: types,
		Base:  p.Base,
		Image: p.Image,
	}
}

// Normalize drops empty type slots, keeping the order of the survivors.
func (d *Draft) Normalize() {
	kept := d.Types[:0]
	for _, t := range d.Types {
		if strings.TrimSpace(t) != "" {
			kept = append(kept, strings.TrimSpace(t))
		}
	}
	d.Types = kept
}

// Validate enforces the full creation rules: a positive id, a non-empty
// english name, at least one type, an absolute image URL, and every stat
// in [1,255]. Runs entirely locally, before any network call.
func (d Draft) Validate() error {
	if err := validation.ValidateStruct(&d,
		validation.Field(&d.ID,
			validation.Required.Error("id must be a positive number"),
			validation.Min(1).Error("id must be a positive number"),
		),
	); err != nil {
		return err
	}
	return d.ValidateEdit()
}

// ValidateEdit enforces the same rules as Validate minus the id
// requirement, for entries that already exist.
func (d Draft) ValidateEdit() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.By(validateName)),
		validation.Field(&d.Types,
			validation.Required.Error("at least one type is required"),
			validation.Length(1, maxTypes).Error("an entry carries one or two types"),
			validation.Each(
				validation.Required.Error("type must not be empty"),
				validation.Length(1, maxTypeLength).Error("type must be at most 20 characters"),
			),
		),
		validation.Field(&d.Image,
			validation.Required.Error("image URL is required"),
			is.RequestURL.Error("image must be an absolute URL"),
		),
		validation.Field(&d.Base, validation.By(validateStats)),
	)
}

func validateName(value any) error {
	name, _ := value.(LocalizedName)
	return validation.ValidateStruct(&name,
		validation.Field(&name.English,
			validation.Required.Error("english name is required"),
			validation.RuneLength(1, maxNameLength).Error("english name must be at most 50 characters"),
		),
	)
}

func validateStats(value any) error {
	stats, _ := value.(Stats)
	// Required catches the zero value, which ozzo's threshold rules
	// otherwise treat as empty and skip.
	inRange := []validation.Rule{
		validation.Required.Error("stat must be between 1 and 255"),
		validation.Min(StatMin).Error("stat must be between 1 and 255"),
		validation.Max(StatMax).Error("stat must be between 1 and 255"),
	}
	return validation.ValidateStruct(&stats,
		validation.Field(&stats.HP, inRange...),
		validation.Field(&stats.Attack, inRange...),
		validation.Field(&stats.Defense, inRange...),
		validation.Field(&stats.SpecialAttack, inRange...),
		validation.Field(&stats.SpecialDefense, inRange...),
		validation.Field(&stats.Speed, inRange...),
	)
}
