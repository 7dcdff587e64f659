package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlegall/pokedeck/internal/pokeapi"
)

const statBarWidth = 24

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmDelete {
		switch msg.String() {
		case "y", "enter":
			m.confirmDelete = false
			return m, m.deleteEntryCmd()
		default:
			m.confirmDelete = false
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.entry = nil
		m.currentView = ViewCatalog
		return m, m.snapshotCmd()

	case key.Matches(msg, m.keys.Edit):
		m.entry.BeginEdit()
		draft, _ := m.entry.Draft()
		m.form = newEditForm(draft)
		m.currentView = ViewForm
		m.errText = ""
		return m, m.form.focusCmd()

	case key.Matches(msg, m.keys.Delete):
		m.confirmDelete = true
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		m.entry.ToggleFavorite()
		return m, nil
	}

	return m, nil
}

// renderDetail draws a single entry: names, types, stats, links.
func (m Model) renderDetail() string {
	if m.entry == nil {
		return m.styles.Muted.Render("Aucune entrée sélectionnée.")
	}
	p := m.entry.Entry()

	var b strings.Builder

	title := fmt.Sprintf("#%03d %s", p.ID, p.Name.English)
	b.WriteString(m.styles.Title.Foreground(PrimaryColor(p.Types)).Render(title))
	if m.entry.Favorite() {
		b.WriteString(" " + m.styles.Heart.Render("♥"))
	}
	b.WriteString("\n")
	b.WriteString(m.typeBadges(p.Types))
	b.WriteString("\n\n")

	b.WriteString(m.renderNames(p.Name))
	b.WriteString("\n")
	b.WriteString(m.renderStats(p))
	b.WriteString("\n")

	if p.Image != "" {
		b.WriteString(m.styles.Muted.Render("Image : " + p.Image))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Muted.Render("Cri   : " + p.SoundURL()))
	b.WriteString("\n\n")

	if m.confirmDelete {
		b.WriteString(m.styles.Modal.Render(fmt.Sprintf(
			"Supprimer %s ?\n\ny/entrée pour confirmer · toute autre touche annule",
			p.Name.English,
		)))
		b.WriteString("\n")
	} else {
		switch {
		case m.errText != "":
			b.WriteString(m.styles.Error.Render("✗ " + m.errText))
		case m.status != "":
			b.WriteString(m.styles.Success.Render("✓ " + m.status))
		default:
			b.WriteString(m.styles.Muted.Render("e éditer · d supprimer · f favori · esc retour"))
		}
	}
	return b.String()
}

func (m Model) renderNames(n pokeapi.LocalizedName) string {
	var b strings.Builder
	rows := []struct{ label, value string }{
		{"Anglais", n.English},
		{"Français", n.French},
		{"Japonais", n.Japanese},
		{"Chinois", n.Chinese},
	}
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		b.WriteString(m.styles.FormLabel.Render(r.label))
		b.WriteString(r.value)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStats(p pokeapi.Pokemon) string {
	var b strings.Builder
	rows := []struct {
		label string
		value int
	}{
		{"PV", p.Base.HP},
		{"Attaque", p.Base.Attack},
		{"Défense", p.Base.Defense},
		{"Att. Spé.", p.Base.SpecialAttack},
		{"Déf. Spé.", p.Base.SpecialDefense},
		{"Vitesse", p.Base.Speed},
	}
	bar := lipgloss.NewStyle().Foreground(PrimaryColor(p.Types))
	for _, r := range rows {
		b.WriteString(m.styles.FormLabel.Render(r.label))
		b.WriteString(fmt.Sprintf("%3d ", r.value))
		b.WriteString(bar.Render(statBar(r.value)))
		b.WriteString("\n")
	}
	return b.String()
}

// statBar scales a stat against the 255 maximum onto a fixed-width bar.
func statBar(value int) string {
	if value < 0 {
		value = 0
	}
	if value > pokeapi.StatMax {
		value = pokeapi.StatMax
	}
	filled := value * statBarWidth / pokeapi.StatMax
	return strings.Repeat("█", filled) + strings.Repeat("░", statBarWidth-filled)
}
