package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleFavoritesKey processes keyboard input for the favorites view.
func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.ViewList):
		m.currentView = ViewCatalog
		return m, m.snapshotCmd()

	case key.Matches(msg, m.keys.Up):
		if m.favSelected > 0 {
			m.favSelected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.favSelected < len(m.favRows)-1 {
			m.favSelected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		if m.favSelected < len(m.favRows) {
			m.favs.Toggle(m.favRows[m.favSelected].ID)
			m.favRows = m.engine.ResolveFavorites(m.favs.All())
			if m.favSelected >= len(m.favRows) && m.favSelected > 0 {
				m.favSelected--
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if m.favSelected < len(m.favRows) {
			return m, m.openDetailCmd(m.favRows[m.favSelected].ID)
		}
		return m, nil
	}

	return m, nil
}

// renderFavorites draws the favorites view in mirror order.
func (m Model) renderFavorites() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Favoris"))
	b.WriteString("  ")
	b.WriteString(m.styles.Heart.Render(fmt.Sprintf("♥ %d", len(m.favRows))))
	b.WriteString("\n\n")

	if len(m.favRows) == 0 {
		b.WriteString(m.styles.Muted.Render("  Aucun favori. Appuyez sur f dans le catalogue pour en ajouter."))
		b.WriteString("\n")
	}
	for i, p := range m.favRows {
		row := fmt.Sprintf("#%03d  %-12s %-12s %s", p.ID, p.Name.English, p.Name.French, m.typeBadges(p.Types))
		if i == m.favSelected {
			row = m.styles.Selected.Render("> " + row)
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("entrée détail · f retirer · esc retour"))
	return b.String()
}
