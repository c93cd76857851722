package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateString(t *testing.T) {
	assert.Equal(t, "list", List.String())
	assert.Equal(t, "externalEditor", ExternalEditor.String())
	assert.Equal(t, "confirm", Confirm.String())
	assert.Equal(t, "unknown", State(99).String())
}

func TestArtifactConstructors(t *testing.T) {
	a := ExternalCommand("vim", []string{"-f", "todo"})
	assert.Equal(t, KindExternalCommand, a.Kind)
	assert.Equal(t, "vim", a.Program)
	assert.Equal(t, []string{"-f", "todo"}, a.Args)

	e := EchoEvent(KeyEvent('q'))
	assert.Equal(t, KindEvent, e.Kind)
	assert.Equal(t, 'q', e.Event.Key)

	cs := ChangeState(Confirm)
	assert.Equal(t, KindChangeState, cs.Kind)
	assert.Equal(t, Confirm, cs.TargetState)

	ex := ExitStatus(Good)
	assert.Equal(t, KindExitStatus, ex.Kind)
	assert.Equal(t, Good, ex.ExitCode)

	errA := Error("boom", ContinuationState(List))
	assert.Equal(t, KindError, errA.Kind)
	assert.Equal(t, "boom", errA.Message)
	require := assert.New(t)
	require.NotNil(errA.Continuation)
	require.Equal(List, *errA.Continuation)
}

func TestErrorWithoutContinuation(t *testing.T) {
	a := Error("boom", nil)
	assert.Nil(t, a.Continuation)
}
