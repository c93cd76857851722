package externaleditor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/module"
	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/todo"
)

func writeTodoFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "git-rebase-todo")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func loadedTodoFile(t *testing.T, contents string) *todo.TodoFile {
	t.Helper()
	path := writeTodoFile(t, contents)
	tf := todo.New(path, 0, "#")
	require.NoError(t, tf.Load())
	return tf
}

// Scenario 1: happy path.
func TestScenario1HappyPath(t *testing.T) {
	tf := loadedTodoFile(t, "pick aaa c1\ndrop bbb c2\n")
	m := New("editor", tf)

	results := m.Activate(module.List)
	require.Len(t, results, 1)
	assert.Equal(t, module.ExternalCommand("editor", []string{tf.GetFilepath()}), results[0])

	onDisk, err := os.ReadFile(tf.GetFilepath())
	require.NoError(t, err)
	assert.Equal(t, "pick aaa c1\ndrop bbb c2\n", string(onDisk))

	results = m.HandleEvent(module.Event{Meta: module.MetaExternalCommandSuccess})
	require.Len(t, results, 2)
	assert.Equal(t, module.EchoEvent(module.Event{Meta: module.MetaExternalCommandSuccess}), results[0])
	assert.Equal(t, module.ChangeState(module.List), results[1])
}

// Scenario 2: editor command with a placement marker.
func TestScenario2PlacementMarker(t *testing.T) {
	tf := loadedTodoFile(t, "")
	m := New("editor a % b", tf)

	results := m.Activate(module.List)
	require.Len(t, results, 1)
	assert.Equal(t, module.ExternalCommand("editor", []string{"a", tf.GetFilepath(), "b"}), results[0])
}

// Scenario 3: write failure on activate.
func TestScenario3WriteFailureOnActivate(t *testing.T) {
	dir := t.TempDir()
	// Point the todo file at a directory path so Write's os.Create fails.
	tf := todo.New(dir, 0, "#")
	m := New("editor", tf)

	results := m.Activate(module.List)
	require.Len(t, results, 1)
	a := results[0]
	assert.Equal(t, module.KindError, a.Kind)
	assert.Equal(t, "Unable to read file "+dir, a.Message)
	require.NotNil(t, a.Continuation)
	assert.Equal(t, module.List, *a.Continuation)
}

// Scenario 4: empty-file recovery, abort.
func TestScenario4EmptyRecoveryAbort(t *testing.T) {
	tf := loadedTodoFile(t, "pick aaa c1\n")
	m := New("editor", tf)
	m.Activate(module.List)

	require.NoError(t, os.WriteFile(tf.GetFilepath(), nil, 0o644))
	results := m.HandleEvent(module.Event{Meta: module.MetaExternalCommandSuccess})
	require.Len(t, results, 1)

	vd := m.BuildViewData()
	assert.Equal(t, "The rebase file is empty.", vd.Title)

	results = m.HandleEvent(module.Event{Key: '1'})
	require.Len(t, results, 2)
	assert.Equal(t, module.EchoEvent(module.Event{Key: '1'}), results[0])
	assert.Equal(t, module.ExitStatus(module.Good), results[1])
	assert.True(t, tf.IsEmpty(), "aborting leaves an empty plan for the host to write back")
}

func TestErrorRecoveryAbortEmptiesPlan(t *testing.T) {
	tf := loadedTodoFile(t, "pick aaa c\n")
	m := New("editor", tf)
	m.Activate(module.List)

	m.HandleEvent(module.Event{Meta: module.MetaExternalCommandError})
	require.Equal(t, stateError, m.state)

	results := m.HandleEvent(module.Event{Key: '1'})
	require.Len(t, results, 2)
	assert.Equal(t, module.ExitStatus(module.Good), results[1])
	assert.True(t, tf.IsEmpty())
}

// Scenario 5: empty-file recovery, undo-and-edit.
func TestScenario5EmptyRecoveryUndoAndEdit(t *testing.T) {
	tf := loadedTodoFile(t, "pick aaa c\ndrop bbb c\n")
	m := New("editor", tf)
	m.Activate(module.List)

	require.NoError(t, os.WriteFile(tf.GetFilepath(), nil, 0o644))
	m.HandleEvent(module.Event{Meta: module.MetaExternalCommandSuccess})

	results := m.HandleEvent(module.Event{Key: '3'})
	require.Len(t, results, 2)
	assert.Equal(t, module.EchoEvent(module.Event{Key: '3'}), results[0])
	assert.Equal(t, module.ExternalCommand("editor", []string{tf.GetFilepath()}), results[1])
	assert.Equal(t, stateActive, m.state)

	onDisk, err := os.ReadFile(tf.GetFilepath())
	require.NoError(t, err)
	assert.Equal(t, "pick aaa c\ndrop bbb c\n", string(onDisk))
}

// Scenario 6: editor non-zero exit.
func TestScenario6EditorNonZeroExit(t *testing.T) {
	tf := loadedTodoFile(t, "pick aaa c\n")
	m := New("editor", tf)
	m.Activate(module.List)

	results := m.HandleEvent(module.Event{Meta: module.MetaExternalCommandError})
	require.Len(t, results, 1)
	assert.Equal(t, module.EchoEvent(module.Event{Meta: module.MetaExternalCommandError}), results[0])
	assert.Equal(t, stateError, m.state)

	vd := m.BuildViewData()
	assert.Equal(t, "Editor returned a non-zero exit status", vd.Title)
}

// Scenario 7: reload error after editor exits successfully.
func TestScenario7ReloadErrorAfterEditor(t *testing.T) {
	tf := loadedTodoFile(t, "pick aaa c\n")
	m := New("editor", tf)
	m.Activate(module.List)

	require.NoError(t, os.Remove(tf.GetFilepath()))
	results := m.HandleEvent(module.Event{Meta: module.MetaExternalCommandSuccess})
	require.Len(t, results, 1)
	assert.Equal(t, stateError, m.state)

	vd := m.BuildViewData()
	assert.Equal(t, "Unable to read file "+tf.GetFilepath(), vd.Title)
}

// Scenario 8: error recovery, restore.
func TestScenario8ErrorRecoveryRestore(t *testing.T) {
	tf := loadedTodoFile(t, "pick aaa c\n")
	m := New("editor", tf)
	m.Activate(module.List)

	require.NoError(t, os.Remove(tf.GetFilepath()))
	m.HandleEvent(module.Event{Meta: module.MetaExternalCommandSuccess})

	results := m.HandleEvent(module.Event{Key: '3'})
	require.Len(t, results, 2)
	assert.Equal(t, module.EchoEvent(module.Event{Key: '3'}), results[0])
	assert.Equal(t, module.ChangeState(module.List), results[1])

	onDisk, err := os.ReadFile(tf.GetFilepath())
	require.NoError(t, err)
	assert.Equal(t, "pick aaa c\n", string(onDisk))
}

// Scenario 9: no editor configured.
func TestScenario9NoEditorConfigured(t *testing.T) {
	tf := loadedTodoFile(t, "pick aaa c\n")
	m := New("", tf)

	results := m.Activate(module.List)
	require.Len(t, results, 1)
	a := results[0]
	assert.Equal(t, module.KindError, a.Kind)
	assert.Equal(t, `No editor configured: Please see the git "core.editor" configuration for details`, a.Message)
	require.NotNil(t, a.Continuation)
	assert.Equal(t, module.List, *a.Continuation)
}

func TestParseEditorCommandMultiplePercentTokens(t *testing.T) {
	program, args, err := ParseEditorCommand("editor % --extra %", "/path/to/todo")
	require.NoError(t, err)
	assert.Equal(t, "editor", program)
	assert.Equal(t, []string{"/path/to/todo", "--extra", "/path/to/todo"}, args)
}

func TestParseEditorCommandNoMarkerAppendsPath(t *testing.T) {
	program, args, err := ParseEditorCommand("vim -f", "/path/to/todo")
	require.NoError(t, err)
	assert.Equal(t, "vim", program)
	assert.Equal(t, []string{"-f", "/path/to/todo"}, args)
}

func TestParseEditorCommandEmpty(t *testing.T) {
	_, _, err := ParseEditorCommand("", "/path/to/todo")
	assert.ErrorIs(t, err, errNoEditor)
}

func TestErrorStateOffersUndoOption(t *testing.T) {
	tf := loadedTodoFile(t, "pick aaa c\ndrop bbb c\n")
	m := New("editor", tf)
	m.Activate(module.List)

	require.NoError(t, os.Remove(tf.GetFilepath()))
	m.HandleEvent(module.Event{Meta: module.MetaExternalCommandSuccess})
	require.Equal(t, stateError, m.state)

	// Recreate the file as an empty plan; the re-edit launch after undo
	// rewrites it from the in-memory lines.
	require.NoError(t, os.WriteFile(tf.GetFilepath(), nil, 0o644))

	results := m.HandleEvent(module.Event{Key: '4'})
	require.Len(t, results, 2)
	assert.Equal(t, stateActive, m.state)
}

func TestEmptyStateHasNoUndoOption(t *testing.T) {
	tf := loadedTodoFile(t, "pick aaa c\n")
	m := New("editor", tf)
	m.Activate(module.List)

	require.NoError(t, os.WriteFile(tf.GetFilepath(), nil, 0o644))
	m.HandleEvent(module.Event{Meta: module.MetaExternalCommandSuccess})
	require.Equal(t, stateEmpty, m.state)

	results := m.HandleEvent(module.Event{Key: '4'})
	require.Len(t, results, 1)
	assert.Equal(t, module.EchoEvent(module.Event{Key: '4'}), results[0])
	assert.Equal(t, stateEmpty, m.state, "option 4 does not exist in Empty, so state is unchanged")
}
