package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlegall/pokedeck/internal/pokeapi"
)

// Default base stats for a new entry.
var createStatDefaults = map[string]int{
	"hp":      45,
	"attack":  49,
	"defense": 49,
	"spatk":   65,
	"spdef":   65,
	"speed":   45,
}

// formField pairs an input with its semantic key and display label.
type formField struct {
	key   string
	label string
	input textinput.Model
}

// entryForm is the shared create/edit form. Creation carries an extra id
// field; everything else is identical between the two flows.
type entryForm struct {
	create bool
	fields []formField
	focus  int
}

func newFormInput(value string, limit int) textinput.Model {
	in := textinput.New()
	in.SetValue(value)
	in.CharLimit = limit
	in.Prompt = ""
	return in
}

// newCreateForm builds an empty form with the default base stats.
func newCreateForm() *entryForm {
	d := pokeapi.Draft{}
	d.Base.HP = createStatDefaults["hp"]
	d.Base.Attack = createStatDefaults["attack"]
	d.Base.Defense = createStatDefaults["defense"]
	d.Base.SpecialAttack = createStatDefaults["spatk"]
	d.Base.SpecialDefense = createStatDefaults["spdef"]
	d.Base.Speed = createStatDefaults["speed"]

	f := buildForm(d, true)
	f.create = true
	return f
}

// newEditForm builds a form prefilled from the reconciler's draft.
func newEditForm(d pokeapi.Draft) *entryForm {
	return buildForm(d, false)
}

func buildForm(d pokeapi.Draft, withID bool) *entryForm {
	typeAt := func(i int) string {
		if i < len(d.Types) {
			return d.Types[i]
		}
		return ""
	}
	statValue := func(v int) string {
		if v == 0 {
			return ""
		}
		return strconv.Itoa(v)
	}

	f := &entryForm{}
	if withID {
		idValue := ""
		if d.ID > 0 {
			idValue = strconv.Itoa(d.ID)
		}
		f.fields = append(f.fields, formField{"id", "Numéro", newFormInput(idValue, 6)})
	}
	f.fields = append(f.fields,
		formField{"english", "Nom (anglais)", newFormInput(d.Name.English, 50)},
		formField{"french", "Nom (français)", newFormInput(d.Name.French, 50)},
		formField{"japanese", "Nom (japonais)", newFormInput(d.Name.Japanese, 50)},
		formField{"chinese", "Nom (chinois)", newFormInput(d.Name.Chinese, 50)},
		formField{"type1", "Type 1", newFormInput(typeAt(0), 20)},
		formField{"type2", "Type 2", newFormInput(typeAt(1), 20)},
		formField{"image", "Image (URL)", newFormInput(d.Image, 200)},
		formField{"hp", "PV", newFormInput(statValue(d.Base.HP), 3)},
		formField{"attack", "Attaque", newFormInput(statValue(d.Base.Attack), 3)},
		formField{"defense", "Défense", newFormInput(statValue(d.Base.Defense), 3)},
		formField{"spatk", "Attaque Spé.", newFormInput(statValue(d.Base.SpecialAttack), 3)},
		formField{"spdef", "Défense Spé.", newFormInput(statValue(d.Base.SpecialDefense), 3)},
		formField{"speed", "Vitesse", newFormInput(statValue(d.Base.Speed), 3)},
	)
	f.fields[0].input.Focus()
	return f
}

func (f *entryForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (f *entryForm) setFocus(idx int) {
	if idx < 0 {
		idx = len(f.fields) - 1
	}
	if idx >= len(f.fields) {
		idx = 0
	}
	f.fields[f.focus].input.Blur()
	f.focus = idx
	f.fields[f.focus].input.Focus()
}

func (f *entryForm) value(key string) string {
	for _, field := range f.fields {
		if field.key == key {
			return strings.TrimSpace(field.input.Value())
		}
	}
	return ""
}

func (f *entryForm) intValue(key string) (int, error) {
	raw := f.value(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q n'est pas un nombre", raw)
	}
	return n, nil
}

// toDraft assembles a creation draft from the form fields.
func (f *entryForm) toDraft() (pokeapi.Draft, error) {
	var d pokeapi.Draft
	var err error

	if f.create {
		if d.ID, err = f.intValue("id"); err != nil {
			return d, fmt.Errorf("numéro : %w", err)
		}
	}
	d.Name.English = f.value("english")
	d.Name.French = f.value("french")
	d.Name.Japanese = f.value("japanese")
	d.Name.Chinese = f.value("chinese")
	d.Types = []string{f.value("type1"), f.value("type2")}
	d.Image = f.value("image")

	stats := []struct {
		key  string
		dest *int
	}{
		{"hp", &d.Base.HP},
		{"attack", &d.Base.Attack},
		{"defense", &d.Base.Defense},
		{"spatk", &d.Base.SpecialAttack},
		{"spdef", &d.Base.SpecialDefense},
		{"speed", &d.Base.Speed},
	}
	for _, s := range stats {
		if *s.dest, err = f.intValue(s.key); err != nil {
			return d, fmt.Errorf("statistique %s : %w", s.key, err)
		}
	}
	return d, nil
}

// handleFormKey processes keyboard input for the create/edit form.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		return m.cancelForm()

	case key.Matches(msg, m.keys.Next):
		m.form.setFocus(m.form.focus + 1)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.form.setFocus(m.form.focus - 1)
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if m.form.focus < len(m.form.fields)-1 {
			m.form.setFocus(m.form.focus + 1)
			return m, nil
		}
		return m.submitForm()

	case msg.String() == "ctrl+s":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form.fields[m.form.focus].input, cmd = m.form.fields[m.form.focus].input.Update(msg)
	return m, cmd
}

func (m Model) cancelForm() (tea.Model, tea.Cmd) {
	if m.form.create {
		m.form = nil
		m.currentView = ViewCatalog
		return m, nil
	}
	m.entry.CancelEdit()
	m.form = nil
	m.currentView = ViewDetail
	return m, nil
}

// submitForm sends a creation to the server, or pushes the edited fields
// into the reconciler and commits. Parse errors stay on screen without
// losing any input.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	draft, err := m.form.toDraft()
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}

	if m.form.create {
		return m, m.createEntryCmd(draft)
	}

	for locale, value := range map[string]string{
		"english":  draft.Name.English,
		"french":   draft.Name.French,
		"japanese": draft.Name.Japanese,
		"chinese":  draft.Name.Chinese,
	} {
		if err := m.entry.SetName(locale, value); err != nil {
			m.errText = err.Error()
			return m, nil
		}
	}
	for i, t := range draft.Types {
		if i > 1 {
			break
		}
		if err := m.entry.SetType(i, t); err != nil {
			m.errText = err.Error()
			return m, nil
		}
	}
	for name, value := range map[string]int{
		"HP":             draft.Base.HP,
		"Attack":         draft.Base.Attack,
		"Defense":        draft.Base.Defense,
		"SpecialAttack":  draft.Base.SpecialAttack,
		"SpecialDefense": draft.Base.SpecialDefense,
		"Speed":          draft.Base.Speed,
	} {
		if err := m.entry.SetStat(name, value); err != nil {
			m.errText = err.Error()
			return m, nil
		}
	}
	if err := m.entry.SetImage(draft.Image); err != nil {
		m.errText = err.Error()
		return m, nil
	}
	return m, m.saveEntryCmd()
}

// renderForm draws the create/edit form.
func (m Model) renderForm() string {
	var b strings.Builder

	title := "Modifier le pokémon"
	if m.form.create {
		title = "Nouveau pokémon"
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")

	for i, field := range m.form.fields {
		marker := "  "
		if i == m.form.focus {
			marker = m.styles.Selected.Render("> ")
		}
		b.WriteString(marker)
		b.WriteString(m.styles.FormLabel.Render(field.label))
		b.WriteString(field.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.errText != "" {
		b.WriteString(m.styles.Error.Render("✗ " + m.errText))
	} else {
		b.WriteString(m.styles.Muted.Render("tab champ suivant · ctrl+s enregistrer · esc annuler"))
	}
	return b.String()
}
