package ui

import (
	"github.com/charmbracelet/huh"

	"github.com/conn-castle/sideload/internal/messages"
)

// Prompts implements the explicit confirmation gates for risky installer
// re-invocations. Declining, aborting, or a prompt failure all read as "no".
type Prompts struct {
	menu *Menu
}

// NewPrompts creates confirmation prompts sharing the menu's terminal handling.
func NewPrompts(menu *Menu) *Prompts {
	return &Prompts{menu: menu}
}

// ConfirmUnverifiedInstall asks whether to install a package that failed
// signature verification.
func (p *Prompts) ConfirmUnverifiedInstall() bool {
	return p.confirm(messages.ConfirmUnverifiedPrompt)
}

// ConfirmDowngrade asks whether to install a package with a lower version
// than the one installed.
func (p *Prompts) ConfirmDowngrade() bool {
	return p.confirm(messages.ConfirmDowngradePrompt)
}

func (p *Prompts) confirm(title string) bool {
	value := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Value(&value),
	))
	abort, err := p.menu.runForm(form)
	if err != nil || abort != abortNone {
		return false
	}
	return value
}
