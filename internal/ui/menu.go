// Package ui implements the interactive collaborators: the package-selection
// menu, the confirmation prompts, and the message printer.
package ui

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/conn-castle/sideload/internal/browse"
	"github.com/conn-castle/sideload/internal/messages"
	"github.com/conn-castle/sideload/internal/terminal"
)

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// abortKind records which key ended a form, set by the program filter while
// the form runs.
type abortKind int

const (
	abortNone abortKind = iota
	abortInterrupt
	abortBack
	abortHome
)

// Menu presents selection lists with huh. It implements browse.MenuPresenter:
// Ctrl+C maps to Interrupted, Esc to GoBack, and Home to GoHome.
type Menu struct {
	isTerminal func() bool
	abort      abortKind // set by the key filter during form.Run(); reset before each form
}

// NewMenu creates a Menu using the default terminal check.
func NewMenu() *Menu {
	return &Menu{isTerminal: terminal.IsInteractive}
}

// ensureInteractive returns an error when the menu is invoked without a terminal.
func (m *Menu) ensureInteractive() error {
	checker := m.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return errors.New(messages.ApplyRequiresTerminal)
}

// menuKeyMap maps all three abort keys to form abort; runForm distinguishes
// them via the filter-recorded abort kind. Filtering is disabled so Esc is
// never swallowed by filter mode.
func menuKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc", "home"))
	km.Select.Filter.SetEnabled(false)
	km.Select.SetFilter.SetEnabled(false)
	km.Select.ClearFilter.SetEnabled(false)
	return km
}

// formFilter records which abort key fired and converts InterruptMsg to
// QuitMsg so bubbletea takes the graceful shutdown path. Keyboard Ctrl+C
// arrives as a KeyMsg before any InterruptMsg, so the kind is already
// recorded when the abort completes.
func (m *Menu) formFilter() func(tea.Model, tea.Msg) tea.Msg {
	return func(_ tea.Model, msg tea.Msg) tea.Msg {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.Type {
			case tea.KeyCtrlC:
				m.abort = abortInterrupt
			case tea.KeyEscape:
				m.abort = abortBack
			case tea.KeyHome:
				m.abort = abortHome
			}
		}
		if _, ok := msg.(tea.InterruptMsg); ok {
			return tea.QuitMsg{}
		}
		return msg
	}
}

// runForm validates terminal availability and runs the provided form,
// reporting how it was aborted.
func (m *Menu) runForm(form *huh.Form) (abortKind, error) {
	if err := m.ensureInteractive(); err != nil {
		return abortNone, err
	}

	m.abort = abortNone
	form.WithKeyMap(menuKeyMap())
	form.WithProgramOptions(
		tea.WithOutput(os.Stderr),
		tea.WithFilter(m.formFilter()),
	)

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		if m.abort == abortNone {
			return abortBack, nil
		}
		return m.abort, nil
	}
	return abortNone, err
}

// ShowMenu renders the items under the given headers and blocks for a
// selection. wrap is accepted for interface compatibility; huh selects always
// wrap. An external SIGINT maps to Interrupted like keyboard Ctrl+C.
func (m *Menu) ShowMenu(headers []string, items []string, initial int, wrap bool) (browse.Selection, error) {
	_ = wrap
	choice := initial
	if choice < 0 || choice >= len(items) {
		choice = 0
	}

	opts := make([]huh.Option[int], len(items))
	for i, item := range items {
		opts[i] = huh.NewOption(item, i)
	}

	title, desc := "", ""
	if len(headers) > 0 {
		title = headers[0]
	}
	if len(headers) > 1 {
		desc = strings.Join(headers[1:], "\n")
	}

	sel := huh.NewSelect[int]().
		Title(title).
		Description(desc).
		Options(opts...).
		Value(&choice)

	abort, err := m.runForm(huh.NewForm(huh.NewGroup(sel)))
	if err != nil {
		return browse.Selection{}, err
	}
	switch abort {
	case abortInterrupt:
		return browse.Selection{Kind: browse.Interrupted}, nil
	case abortBack:
		return browse.Selection{Kind: browse.GoBack}, nil
	case abortHome:
		return browse.Selection{Kind: browse.GoHome}, nil
	}
	return browse.Selection{Kind: browse.Chose, Index: choice}, nil
}

var _ browse.MenuPresenter = (*Menu)(nil)
