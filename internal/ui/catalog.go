package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlegall/pokedeck/internal/collection"
)

// handleCatalogKey processes keyboard input for the catalog view.
func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filterOverlay {
		return m.handleFilterKey(msg)
	}
	if m.searchFocused {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		m.searchFocused = true
		m.searchInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		// Type filters do not apply to a committed search result.
		if m.view.Mode != collection.ModeCommitted {
			m.filterOverlay = true
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearFilters):
		m.engine.ClearFilters()
		m.selectedRow = 0
		return m, m.refreshCatalogCmd()

	case key.Matches(msg, m.keys.PageSize):
		m.cyclePageSize()
		m.selectedRow = 0
		return m, m.refreshCatalogCmd()

	case key.Matches(msg, m.keys.NextPage):
		m.engine.NextPage()
		m.selectedRow = 0
		return m, m.refreshCatalogCmd()

	case key.Matches(msg, m.keys.PrevPage):
		m.engine.PrevPage()
		m.selectedRow = 0
		return m, m.refreshCatalogCmd()

	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.refreshCatalogCmd(), m.refreshMirrorCmd())

	case key.Matches(msg, m.keys.New):
		m.form = newCreateForm()
		m.currentView = ViewForm
		m.errText = ""
		return m, m.form.focusCmd()

	case key.Matches(msg, m.keys.ViewFavorites):
		m.favRows = m.engine.ResolveFavorites(m.favs.All())
		m.favSelected = 0
		m.currentView = ViewFavorites
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		if item, ok := m.selectedItem(); ok {
			m.favs.Toggle(item.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < len(m.view.Items)-1 {
			m.selectedRow++
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if item, ok := m.selectedItem(); ok {
			return m, m.openDetailCmd(item.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.view.Mode != collection.ModeBrowse {
			m.engine.ClearSearch()
			m.searchInput.Reset()
			m.suggestions = nil
			m.selectedRow = 0
			return m, m.refreshCatalogCmd()
		}
		return m, nil
	}

	return m, nil
}

// handleSearchKey processes keyboard input while the search box has focus.
// Every keystroke feeds the engine's live filter; enter commits via the
// remote search endpoint.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchFocused = false
		m.searchInput.Blur()
		m.searchInput.Reset()
		m.suggestions = nil
		m.engine.ClearSearch()
		m.selectedRow = 0
		return m, m.refreshCatalogCmd()

	case "enter":
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			m.searchFocused = false
			m.searchInput.Blur()
			return m, nil
		}
		if len(query) > maxSearchLength {
			m.errText = fmt.Sprintf("recherche limitée à %d caractères", maxSearchLength)
			return m, nil
		}
		return m, m.commitSearchCmd(query)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.engine.SetSearchText(m.searchInput.Value())
	m.suggestions = m.engine.Suggestions(m.searchInput.Value())
	m.selectedRow = 0
	return m, tea.Batch(cmd, m.snapshotCmd())
}

// handleFilterKey processes keyboard input for the type filter overlay.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "t":
		m.filterOverlay = false
		return m, nil

	case "j", "down":
		if m.filterIndex < len(knownTypes)-1 {
			m.filterIndex++
		}
		return m, nil

	case "k", "up":
		if m.filterIndex > 0 {
			m.filterIndex--
		}
		return m, nil

	case "enter", " ":
		m.engine.ToggleFilter(knownTypes[m.filterIndex])
		m.selectedRow = 0
		return m, m.refreshCatalogCmd()

	case "T":
		m.engine.ClearFilters()
		m.selectedRow = 0
		return m, m.refreshCatalogCmd()
	}

	return m, nil
}

// cyclePageSize advances to the next selectable page size, wrapping.
func (m *Model) cyclePageSize() {
	current := m.engine.PageSize()
	for i, s := range collection.PageSizes {
		if s == current {
			next := collection.PageSizes[(i+1)%len(collection.PageSizes)]
			_ = m.engine.SetPageSize(next)
			return
		}
	}
	_ = m.engine.SetPageSize(collection.DefaultPageSize)
}

// renderCatalog draws the catalog view: search bar, entry rows, footer.
func (m Model) renderCatalog() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Pokédeck"))
	b.WriteString("  ")
	b.WriteString(m.styles.Muted.Render(m.modeLabel()))
	b.WriteString("\n\n")

	b.WriteString(m.searchInput.View())
	b.WriteString("\n")

	if m.searchFocused && len(m.suggestions) > 0 {
		for _, s := range m.suggestions {
			b.WriteString(m.styles.Muted.Render(fmt.Sprintf("   ↳ %s (#%03d)", s.Name.French, s.ID)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	if m.filterOverlay {
		b.WriteString(m.renderFilterOverlay())
		return b.String()
	}

	if len(m.view.Items) == 0 {
		b.WriteString(m.styles.Muted.Render("  Aucun pokémon à afficher."))
		b.WriteString("\n")
	}
	for i, p := range m.view.Items {
		row := fmt.Sprintf("#%03d  %-12s %-12s %s", p.ID, p.Name.English, p.Name.French, m.typeBadges(p.Types))
		if m.favs.Contains(p.ID) {
			row += " " + m.styles.Heart.Render("♥")
		}
		if i == m.selectedRow {
			row = m.styles.Selected.Render("> " + row)
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) modeLabel() string {
	switch m.view.Mode {
	case collection.ModeLiveFilter:
		return fmt.Sprintf("filtre : %q", m.view.SearchText)
	case collection.ModeCommitted:
		return "résultat de recherche (esc pour revenir)"
	default:
		return "navigation"
	}
}

func (m Model) typeBadges(types []string) string {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, m.styles.TypeBadge(t))
	}
	return strings.Join(parts, " ")
}

// renderFilterOverlay draws the type selection list with active markers.
func (m Model) renderFilterOverlay() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Filtrer par type"))
	b.WriteString(m.styles.Muted.Render("  (entrée pour basculer, T pour tout effacer, esc pour fermer)"))
	b.WriteString("\n\n")
	for i, tag := range knownTypes {
		marker := "[ ]"
		if m.engine.HasFilter(tag) {
			marker = "[x]"
		}
		line := fmt.Sprintf("%s %s", marker, m.styles.TypeBadge(tag))
		if i == m.filterIndex {
			line = m.styles.Selected.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderFooter draws pagination, filters, and the status/error line.
func (m Model) renderFooter() string {
	var b strings.Builder

	b.WriteString(m.styles.Footer.Render(fmt.Sprintf(
		"Page %d / %d (%d pokémons) · taille %d",
		m.view.PageNumber, m.view.TotalPages, m.view.TotalCount, m.view.PageSize,
	)))
	if len(m.view.Filters) > 0 {
		b.WriteString(m.styles.Footer.Render("· types : " + strings.Join(m.view.Filters, ", ")))
	}
	b.WriteString("\n")

	switch {
	case m.errText != "":
		b.WriteString(m.styles.Error.Render("✗ " + m.errText))
	case m.status != "":
		b.WriteString(m.styles.Success.Render("✓ " + m.status))
	default:
		b.WriteString(m.styles.Muted.Render(m.shortHelpLine()))
	}
	return b.String()
}

// shortHelpLine renders the footer hint from the short help bindings.
func (m Model) shortHelpLine() string {
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, binding := range m.keys.ShortHelp() {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
