package ui

import (
	"strings"
	"testing"

	"github.com/mlegall/pokedeck/internal/pokeapi"
)

func formSet(t *testing.T, f *entryForm, key, value string) {
	t.Helper()
	for i := range f.fields {
		if f.fields[i].key == key {
			f.fields[i].input.SetValue(value)
			return
		}
	}
	t.Fatalf("no form field %q", key)
}

func TestCreateFormHasStatDefaults(t *testing.T) {
	f := newCreateForm()

	draft, err := f.toDraft()
	if err != nil {
		t.Fatalf("toDraft: %v", err)
	}
	if draft.Base.HP != 45 || draft.Base.Attack != 49 || draft.Base.Defense != 49 {
		t.Errorf("unexpected physical stat defaults: %+v", draft.Base)
	}
	if draft.Base.SpecialAttack != 65 || draft.Base.SpecialDefense != 65 || draft.Base.Speed != 45 {
		t.Errorf("unexpected special stat defaults: %+v", draft.Base)
	}
}

func TestCreateFormIncludesIDField(t *testing.T) {
	f := newCreateForm()
	if f.fields[0].key != "id" {
		t.Errorf("first create field = %q, want id", f.fields[0].key)
	}
}

func TestEditFormOmitsIDField(t *testing.T) {
	f := newEditForm(pokeapi.Draft{ID: 25})
	for _, field := range f.fields {
		if field.key == "id" {
			t.Error("edit form should not expose the id field")
		}
	}
}

func TestEditFormPrefillsDraft(t *testing.T) {
	d := pokeapi.Draft{
		Name:  pokeapi.LocalizedName{English: "Pikachu", French: "Pikachu"},
		Types: []string{"electric"},
		Image: "http://img/25.png",
	}
	d.Base.HP = 35

	f := newEditForm(d)
	if got := f.value("english"); got != "Pikachu" {
		t.Errorf("english = %q", got)
	}
	if got := f.value("type1"); got != "electric" {
		t.Errorf("type1 = %q", got)
	}
	if got := f.value("type2"); got != "" {
		t.Errorf("type2 = %q, want empty", got)
	}
	if got := f.value("hp"); got != "35" {
		t.Errorf("hp = %q", got)
	}
}

func TestFormToDraftParsesFields(t *testing.T) {
	f := newCreateForm()
	formSet(t, f, "id", "152")
	formSet(t, f, "english", "Chikorita")
	formSet(t, f, "french", " Germignon ")
	formSet(t, f, "type1", "grass")
	formSet(t, f, "image", "http://img/152.png")
	formSet(t, f, "hp", "45")

	draft, err := f.toDraft()
	if err != nil {
		t.Fatalf("toDraft: %v", err)
	}
	if draft.ID != 152 {
		t.Errorf("id = %d, want 152", draft.ID)
	}
	if draft.Name.French != "Germignon" {
		t.Errorf("french = %q, want trimmed value", draft.Name.French)
	}
	if draft.Base.HP != 45 {
		t.Errorf("hp = %d", draft.Base.HP)
	}
}

func TestFormToDraftRejectsBadNumbers(t *testing.T) {
	f := newCreateForm()
	formSet(t, f, "hp", "beaucoup")

	if _, err := f.toDraft(); err == nil {
		t.Fatal("expected an error for a non-numeric stat")
	} else if !strings.Contains(err.Error(), "hp") {
		t.Errorf("error %q should name the field", err)
	}
}

func TestFormFocusWraps(t *testing.T) {
	f := newCreateForm()
	last := len(f.fields) - 1

	f.setFocus(last)
	if f.focus != last {
		t.Fatalf("focus = %d, want %d", f.focus, last)
	}
	f.setFocus(last + 1)
	if f.focus != 0 {
		t.Errorf("focus after wrap = %d, want 0", f.focus)
	}
	f.setFocus(-1)
	if f.focus != last {
		t.Errorf("focus after reverse wrap = %d, want %d", f.focus, last)
	}
}
