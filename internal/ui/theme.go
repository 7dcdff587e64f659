package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// typeColors maps each known type tag to its primary display color.
// Unknown tags fall back to the "normal" gray.
var typeColors = map[string]lipgloss.Color{
	"normal":   lipgloss.Color("#A8A878"),
	"fire":     lipgloss.Color("#F08030"),
	"water":    lipgloss.Color("#6890F0"),
	"grass":    lipgloss.Color("#78C850"),
	"electric": lipgloss.Color("#F8D030"),
	"ice":      lipgloss.Color("#98D8D8"),
	"fighting": lipgloss.Color("#C03028"),
	"poison":   lipgloss.Color("#A040A0"),
	"ground":   lipgloss.Color("#E0C068"),
	"flying":   lipgloss.Color("#A890F0"),
	"psychic":  lipgloss.Color("#F85888"),
	"bug":      lipgloss.Color("#A8B820"),
	"rock":     lipgloss.Color("#B8A038"),
	"ghost":    lipgloss.Color("#705898"),
	"dragon":   lipgloss.Color("#7038F8"),
	"dark":     lipgloss.Color("#705848"),
	"steel":    lipgloss.Color("#B8B8D0"),
	"fairy":    lipgloss.Color("#EE99AC"),
}

// knownTypes lists the filterable type tags in palette order.
var knownTypes = []string{
	"normal", "fire", "water", "grass", "electric", "ice",
	"fighting", "poison", "ground", "flying", "psychic", "bug",
	"rock", "ghost", "dragon", "dark", "steel", "fairy",
}

const fallbackTypeColor = lipgloss.Color("#999999")

// TypeColor returns the display color for a type tag.
func TypeColor(tag string) lipgloss.Color {
	if c, ok := typeColors[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return c
	}
	return fallbackTypeColor
}

// PrimaryColor returns the color derived from an entry's first type.
func PrimaryColor(types []string) lipgloss.Color {
	if len(types) == 0 {
		return fallbackTypeColor
	}
	return TypeColor(types[0])
}

// Styles groups the prebuilt lipgloss styles used across views.
type Styles struct {
	Title     lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Selected  lipgloss.Style
	Heart     lipgloss.Style
	Footer    lipgloss.Style
	Badge     lipgloss.Style
	FormLabel lipgloss.Style
	Modal     lipgloss.Style
}

// DefaultStyles builds the style set.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F8D030")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B")),
		Selected:  lipgloss.NewStyle().Background(lipgloss.Color("#44475A")).Bold(true),
		Heart:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF79C6")),
		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1),
		Badge:     lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#FFFFFF")),
		FormLabel: lipgloss.NewStyle().Width(16).Foreground(lipgloss.Color("250")),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF5555")).
			Padding(1, 2),
	}
}

// TypeBadge renders a colored badge for a type tag.
func (s Styles) TypeBadge(tag string) string {
	return s.Badge.Background(TypeColor(tag)).Render(tag)
}
