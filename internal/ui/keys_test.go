package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestShortHelpLineRendersFooterBindings(t *testing.T) {
	m := Model{keys: DefaultKeyMap()}
	line := m.shortHelpLine()

	for _, want := range []string{"? aide", "/ recherche", "q quitter"} {
		if !strings.Contains(line, want) {
			t.Errorf("footer %q missing %q", line, want)
		}
	}
}

func TestFormNavigationBindings(t *testing.T) {
	k := DefaultKeyMap()

	if !key.Matches(tea.KeyMsg{Type: tea.KeyTab}, k.Next) {
		t.Error("tab should advance to the next form field")
	}
	if !key.Matches(tea.KeyMsg{Type: tea.KeyDown}, k.Next) {
		t.Error("down should advance to the next form field")
	}
	if !key.Matches(tea.KeyMsg{Type: tea.KeyShiftTab}, k.Prev) {
		t.Error("shift+tab should return to the previous form field")
	}
	if !key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, k.Confirm) {
		t.Error("enter should confirm")
	}
}

func TestEveryBindingCarriesHelp(t *testing.T) {
	for _, group := range DefaultKeyMap().FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			if h.Key == "" || h.Desc == "" {
				t.Errorf("binding %v has incomplete help text", binding.Keys())
			}
		}
	}
}
