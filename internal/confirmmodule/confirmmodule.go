// Package confirmmodule implements a generic yes/no confirmation screen,
// reused wherever a module needs to ask "are you sure?" before an
// irreversible artifact such as ExitStatus.
package confirmmodule

import (
	"fmt"

	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/keys"
	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/module"
)

// Module is a yes/no confirmation prompt. On "yes" it produces the
// configured exit code; on "no" it returns to the state it was activated
// from.
type Module struct {
	title    string
	exitCode module.ExitCode

	prior module.State
}

// New builds a Confirm module that asks title and, on confirmation, exits
// with exitCode.
func New(title string, exitCode module.ExitCode) *Module {
	return &Module{title: title, exitCode: exitCode}
}

var _ module.Module = (*Module)(nil)

// Activate caches the state to return to on "no".
func (m *Module) Activate(prior module.State) module.Results {
	m.prior = prior
	return nil
}

// Deactivate has no cached state to release.
func (m *Module) Deactivate() module.Results { return nil }

// HandleEvent resolves 'y'/'Y' to the configured exit code, and
// 'n'/'N'/esc back to the prior state.
func (m *Module) HandleEvent(e module.Event) module.Results {
	if e.Meta != module.MetaNone {
		return nil
	}

	switch {
	case keys.Matches(e.Key, keys.Yes):
		return module.Results{module.EchoEvent(e), module.ExitStatus(m.exitCode)}
	case keys.Matches(e.Key, keys.No):
		return module.Results{module.EchoEvent(e), module.ChangeState(m.prior)}
	default:
		return nil
	}
}

// BuildViewData renders the confirmation title with a "[y/N]" hint.
func (m *Module) BuildViewData() module.ViewData {
	return module.ViewData{
		Title:  fmt.Sprintf("%s [y/N]", m.title),
		Footer: keys.Help(keys.Yes, keys.No),
	}
}
