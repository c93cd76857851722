package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/confirmmodule"
	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/listmodule"
	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/module"
	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/todo"
)

// These tests drive the real List and Confirm modules through the
// Dispatcher to pin the quit/abort flow end to end: 'q' routes through the
// confirmation prompt, and only a confirmed 'y' ends the run with the
// Abort code the host turns into an empty plan.

func abortFlowDispatcher(tf *todo.TodoFile, events []module.Event) *Dispatcher {
	modules := map[module.State]module.Module{
		module.List:    listmodule.New(tf),
		module.Confirm: confirmmodule.New("Are you sure you want to abort", module.Abort),
	}
	return New(
		modules,
		module.List,
		&queueEventSource{events: events},
		func(string, []string) error { return nil },
		newTestLogger(),
	)
}

func TestDispatcherQuitConfirmedExitsAbort(t *testing.T) {
	tf := loadedTodoFile(t, "pick aaa c1\ndrop bbb c2\n")
	d := abortFlowDispatcher(tf, []module.Event{
		module.KeyEvent('q'),
		module.KeyEvent('y'),
	})

	code, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, module.Abort, code)
}

func TestDispatcherQuitDeclinedReturnsToList(t *testing.T) {
	tf := loadedTodoFile(t, "pick aaa c1\ndrop bbb c2\n")
	d := abortFlowDispatcher(tf, []module.Event{
		module.KeyEvent('q'),
		module.KeyEvent('n'),
		module.KeyEvent('d'),
	})

	code, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, module.Good, code)

	line, ok := tf.GetLine(0)
	require.True(t, ok)
	assert.Equal(t, todo.Drop, line.Action(), "keys after 'n' reach the List module again")
	assert.False(t, tf.IsEmpty(), "declining the prompt leaves the plan intact")
}
