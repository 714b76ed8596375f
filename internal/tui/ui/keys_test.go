package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
	}{
		{"Up", keys.Up},
		{"Down", keys.Down},
		{"Top", keys.Top},
		{"Bottom", keys.Bottom},
		{"Search", keys.Search},
		{"Apply", keys.Apply},
		{"Clear", keys.Clear},
		{"NextTheme", keys.NextTheme},
		{"PrevTheme", keys.PrevTheme},
		{"Reload", keys.Reload},
		{"Help", keys.Help},
		{"Quit", keys.Quit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.binding.Keys()) == 0 {
				t.Errorf("binding %s has no keys", tt.name)
			}
			if tt.binding.Help().Key == "" || tt.binding.Help().Desc == "" {
				t.Errorf("binding %s has no help text", tt.name)
			}
			if !tt.binding.Enabled() {
				t.Errorf("binding %s should be enabled", tt.name)
			}
		})
	}
}

func TestKeyMap_Matches(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"k moves up", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}, keys.Up},
		{"arrow moves down", tea.KeyMsg{Type: tea.KeyDown}, keys.Down},
		{"slash searches", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}}, keys.Search},
		{"enter applies", tea.KeyMsg{Type: tea.KeyEnter}, keys.Apply},
		{"esc clears", tea.KeyMsg{Type: tea.KeyEsc}, keys.Clear},
		{"t cycles theme", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}}, keys.NextTheme},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, keys.Quit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("%q should match binding %v", tt.msg.String(), tt.binding.Keys())
			}
		})
	}
}

func TestKeyMap_Help(t *testing.T) {
	var km help.KeyMap = DefaultKeyMap()

	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp() should not be empty")
	}

	total := 0
	for _, group := range km.FullHelp() {
		total += len(group)
	}
	if total != 12 {
		t.Errorf("FullHelp() lists %d bindings, expected 12", total)
	}
}
