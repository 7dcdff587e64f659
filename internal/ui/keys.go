package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit   key.Binding
	Help   key.Binding
	Escape key.Binding

	// View switching
	ViewList      key.Binding
	ViewFavorites key.Binding

	// List actions
	Search       key.Binding
	Filter       key.Binding
	ClearFilters key.Binding
	PageSize     key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	Refresh      key.Binding
	New          key.Binding

	// Detail actions
	Edit     key.Binding
	Delete   key.Binding
	Favorite key.Binding

	// Navigation
	Up   key.Binding
	Down key.Binding

	// Forms/input
	Confirm key.Binding
	Next    key.Binding
	Prev    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quitter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "aide"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "retour / annuler"),
		),

		// View switching
		ViewList: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "catalogue"),
		),
		ViewFavorites: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "favoris"),
		),

		// List actions
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "recherche"),
		),
		Filter: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "filtrer par type"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "effacer les filtres"),
		),
		PageSize: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "taille de page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "n"),
			key.WithHelp("→/n", "page suivante"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "p"),
			key.WithHelp("←/p", "page précédente"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rafraîchir"),
		),
		New: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "ajouter"),
		),

		// Detail actions
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "éditer"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "supprimer"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favori"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "monter"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "descendre"),
		),

		// Forms/input
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("entrée", "valider"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "champ suivant"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "champ précédent"),
		),
	}
}

// ShortHelp returns the bindings surfaced on the catalog footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Search, k.Filter, k.New, k.ViewFavorites, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage, k.PageSize},
		{k.Search, k.Filter, k.ClearFilters, k.Refresh},
		{k.New, k.Edit, k.Delete, k.Favorite},
		{k.Confirm, k.Next, k.Prev},
		{k.ViewList, k.ViewFavorites, k.Escape, k.Help, k.Quit},
	}
}
