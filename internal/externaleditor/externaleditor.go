// Package externaleditor implements the state machine that drives one
// external-editor session against a rebase-todo file: write the plan,
// launch the configured editor as a host artifact, re-read the plan when
// the host reports success, and fall back to a recovery prompt on any
// failure along the way.
package externaleditor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/module"
	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/todo"
)

// editorState is the tagged ExternalEditorState from the data model:
// Active, Empty, or Error(message).
type editorState int

const (
	stateActive editorState = iota
	stateEmpty
	stateError
)

var errNoEditor = errors.New("no editor configured")

type command struct {
	program string
	args    []string
}

// Module drives an external-editor session over a [*todo.TodoFile].
type Module struct {
	editorTemplate string
	todoFile       *todo.TodoFile

	state      editorState
	errMessage string

	externalCommand command
	lines           []todo.Line // activation snapshot, for restore-and-abort
	priorState      module.State
}

// New builds an ExternalEditor module for the given editor command template
// (see ParseEditorCommand for its syntax) operating on todoFile.
func New(editorTemplate string, todoFile *todo.TodoFile) *Module {
	return &Module{editorTemplate: editorTemplate, todoFile: todoFile}
}

var _ module.Module = (*Module)(nil)

// ParseEditorCommand splits an editor command template on whitespace. Any
// token equal to exactly "%" is replaced by path; if no such token exists,
// path is appended as a final argument. The first token is the program,
// the rest its arguments.
//
// An empty template fails with errNoEditor.
func ParseEditorCommand(template, path string) (program string, args []string, err error) {
	fields := strings.Fields(template)
	if len(fields) == 0 {
		return "", nil, errNoEditor
	}

	program = fields[0]
	args = append([]string(nil), fields[1:]...)

	replaced := false
	for i, a := range args {
		if a == "%" {
			args[i] = path
			replaced = true
		}
	}
	if !replaced {
		args = append(args, path)
	}

	return program, args, nil
}

// Activate writes the todo file and launches the configured editor. A fresh
// entry (after Deactivate released the previous session) snapshots the
// current lines for later restore-and-abort; re-activation mid-session keeps
// the existing snapshot.
func (m *Module) Activate(prior module.State) module.Results {
	m.priorState = prior
	return m.launch(m.lines == nil)
}

// Deactivate releases the module's cached activation state.
func (m *Module) Deactivate() module.Results {
	m.externalCommand = command{}
	m.lines = nil
	return nil
}

// launch performs the write-then-launch sequence shared by first activation
// and every subsequent re-edit. snapshot controls whether the current todo
// lines are captured as the restore-and-abort target; a fresh activation
// snapshots, a re-edit from a recovery prompt does not.
func (m *Module) launch(snapshot bool) module.Results {
	program, args, err := ParseEditorCommand(m.editorTemplate, m.todoFile.GetFilepath())
	if err != nil {
		return module.Results{module.Error(
			`No editor configured: Please see the git "core.editor" configuration for details`,
			module.ContinuationState(m.priorState),
		)}
	}

	if err := m.todoFile.Write(); err != nil {
		return module.Results{module.Error(
			m.fileErrorMessage(),
			module.ContinuationState(m.priorState),
		)}
	}

	if snapshot {
		m.lines = m.todoFile.GetLinesOwned()
	}
	m.externalCommand = command{program: program, args: args}
	m.state = stateActive

	return module.Results{module.ExternalCommand(program, args)}
}

func (m *Module) fileErrorMessage() string {
	return fmt.Sprintf("Unable to read file %s", m.todoFile.GetFilepath())
}

// HandleEvent consumes one event and returns the resulting artifacts.
func (m *Module) HandleEvent(e module.Event) module.Results {
	switch m.state {
	case stateActive:
		return m.handleActive(e)
	case stateEmpty:
		return m.handlePrompt(e, false /* hasUndoOption */)
	case stateError:
		return m.handlePrompt(e, true /* hasUndoOption */)
	default:
		return nil
	}
}

func (m *Module) handleActive(e module.Event) module.Results {
	switch e.Meta {
	case module.MetaExternalCommandSuccess:
		results := module.Results{module.EchoEvent(e)}

		if err := m.todoFile.Load(); err != nil {
			m.state = stateError
			m.errMessage = m.fileErrorMessage()
			return results
		}

		if m.todoFile.IsEmpty() {
			m.state = stateEmpty
			return results
		}

		return append(results, module.ChangeState(module.List))

	case module.MetaExternalCommandError:
		m.state = stateError
		m.errMessage = "Editor returned a non-zero exit status"
		return module.Results{module.EchoEvent(e)}

	default:
		// Arbitrary other events (including raw keystrokes) are
		// dropped silently while an editor session is in flight.
		return nil
	}
}

// handlePrompt handles the '1'..'4' recovery choices offered by the Empty
// and Error states. hasUndoOption distinguishes Error (which additionally
// offers '4': undo one step and re-edit) from Empty (which does not).
func (m *Module) handlePrompt(e module.Event, hasUndoOption bool) module.Results {
	if e.Meta != module.MetaNone {
		return nil
	}

	results := module.Results{module.EchoEvent(e)}

	switch e.Key {
	case '1':
		// Aborting leaves an empty plan for the host to write back, which
		// is how Git is told to abort the rebase.
		m.todoFile.SetLines(nil)
		return append(results, module.ExitStatus(module.Good))

	case '2':
		return append(results, m.launch(false)...)

	case '3':
		if !hasUndoOption {
			// Empty: "Undo modifications and edit rebase file" —
			// restore the activation snapshot and re-edit.
			if err := m.restoreSnapshot(); err != nil {
				return append(results, module.Error(m.fileErrorMessage(), module.ContinuationState(m.priorState)))
			}
			return append(results, m.launch(false)...)
		}
		// Error: "Restore rebase file and abort edit" — restore the
		// snapshot and return to the list.
		if err := m.restoreSnapshot(); err != nil {
			return append(results, module.Error(m.fileErrorMessage(), module.ContinuationState(m.priorState)))
		}
		return append(results, module.ChangeState(module.List))

	case '4':
		if !hasUndoOption {
			return results
		}
		m.todoFile.Undo()
		return append(results, m.launch(false)...)

	default:
		return results
	}
}

func (m *Module) restoreSnapshot() error {
	restored := make([]todo.Line, len(m.lines))
	copy(restored, m.lines)
	m.todoFile.SetLines(restored)
	return m.todoFile.Write()
}

// BuildViewData renders the current prompt.
func (m *Module) BuildViewData() module.ViewData {
	switch m.state {
	case stateEmpty:
		return module.ViewData{
			Title: "The rebase file is empty.",
			Body: []string{
				"1) Abort rebase",
				"2) Edit rebase file",
				"3) Undo modifications and edit rebase file",
			},
			Footer: "Please choose an option.",
		}

	case stateError:
		return module.ViewData{
			Title: m.errMessage,
			Body: []string{
				"1) Abort rebase",
				"2) Edit rebase file",
				"3) Restore rebase file and abort edit",
				"4) Undo modifications and edit rebase file",
			},
			Footer: "Please choose an option.",
		}

	default:
		return module.ViewData{Title: "Editing..."}
	}
}
