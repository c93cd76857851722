// Package listmodule implements the default landing module: it renders the
// todo lines with a selection cursor and handles the everyday rebase-plan
// editing keys (move, drop, reorder, undo/redo), delegating every mutation
// to the shared [*todo.TodoFile].
package listmodule

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/keys"
	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/module"
	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/todo"
)

var cursorStyle = lipgloss.NewStyle().Bold(true)

// Module is the list/editing screen over a [*todo.TodoFile].
type Module struct {
	todoFile *todo.TodoFile
}

// New builds a List module over todoFile.
func New(todoFile *todo.TodoFile) *Module {
	return &Module{todoFile: todoFile}
}

var _ module.Module = (*Module)(nil)

// Activate has no side effects; the module simply starts observing
// todoFile again.
func (m *Module) Activate(module.State) module.Results { return nil }

// Deactivate has no cached state to release.
func (m *Module) Deactivate() module.Results { return nil }

// HandleEvent dispatches a single key event to a TodoFile mutation or a
// dispatcher-facing artifact.
func (m *Module) HandleEvent(e module.Event) module.Results {
	if e.Meta != module.MetaNone {
		return nil
	}

	sel := m.todoFile.GetSelectedLineIndex()

	switch e.Arrow {
	case module.ArrowUp:
		m.todoFile.SetSelectedLineIndex(sel - 1)
		return nil
	case module.ArrowDown:
		m.todoFile.SetSelectedLineIndex(sel + 1)
		return nil
	}

	k := e.Key

	switch {
	case keys.Matches(k, keys.MoveUp):
		m.todoFile.SetSelectedLineIndex(sel - 1)
	case keys.Matches(k, keys.MoveDown):
		m.todoFile.SetSelectedLineIndex(sel + 1)

	case keys.Matches(k, keys.Undo):
		if start, _, ok := m.todoFile.Undo(); ok {
			m.todoFile.SetSelectedLineIndex(start)
		}
	case keys.Matches(k, keys.Redo):
		if start, _, ok := m.todoFile.Redo(); ok {
			m.todoFile.SetSelectedLineIndex(start)
		}

	case keys.Matches(k, keys.SwapUp):
		if m.todoFile.SwapRangeUp(sel, sel) {
			m.todoFile.SetSelectedLineIndex(sel - 1)
		}
	case keys.Matches(k, keys.SwapDown):
		if m.todoFile.SwapRangeDown(sel, sel) {
			m.todoFile.SetSelectedLineIndex(sel + 1)
		}

	case keys.Matches(k, keys.ActionPick):
		m.setAction(sel, todo.Pick)
	case keys.Matches(k, keys.ActionReword):
		m.setAction(sel, todo.Reword)
	case keys.Matches(k, keys.ActionEdit):
		m.setAction(sel, todo.Edit)
	case keys.Matches(k, keys.ActionSquash):
		m.setAction(sel, todo.Squash)
	case keys.Matches(k, keys.ActionFixup):
		m.setAction(sel, todo.Fixup)
	case keys.Matches(k, keys.ActionDrop):
		m.setAction(sel, todo.Drop)

	case keys.Matches(k, keys.OpenEditor):
		return module.Results{module.ChangeState(module.ExternalEditor)}

	case keys.Matches(k, keys.Quit):
		return module.Results{module.ChangeState(module.Confirm)}
	}

	return nil
}

func (m *Module) setAction(sel int, a todo.Action) {
	m.todoFile.UpdateRange(sel, sel, todo.NewEditContext().WithAction(a))
}

// BuildViewData renders every line with the selection cursor marked.
func (m *Module) BuildViewData() module.ViewData {
	if m.todoFile.IsEmpty() {
		return module.ViewData{Title: "Rebase plan is empty"}
	}

	sel := m.todoFile.GetSelectedLineIndex()
	body := make([]string, 0, m.todoFile.GetMaxSelectedLineIndex()+1)
	i := 0
	for line := range m.todoFile.LinesIter() {
		cursor := "  "
		if i == sel {
			cursor = cursorStyle.Render("> ")
		}
		body = append(body, fmt.Sprintf("%s%s", cursor, line.ToText()))
		i++
	}

	footer := keys.Help(
		keys.MoveUp, keys.MoveDown, keys.SwapUp, keys.SwapDown,
		keys.ActionPick, keys.ActionReword, keys.ActionEdit,
		keys.ActionSquash, keys.ActionFixup, keys.ActionDrop,
		keys.Undo, keys.Redo, keys.OpenEditor, keys.Quit,
	)

	return module.ViewData{Title: "Interactive rebase", Body: body, Footer: footer}
}
