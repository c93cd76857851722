package execedit

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandAttachesStandardStreams(t *testing.T) {
	cmd := Command("true")
	assert.Equal(t, os.Stdin, cmd.Stdin)
	assert.Equal(t, os.Stdout, cmd.Stdout)
	assert.Equal(t, os.Stderr, cmd.Stderr)
}

func TestCommandBuildsArgv(t *testing.T) {
	cmd := Command("vim", "-f", "/tmp/todo")
	assert.Equal(t, []string{"vim", "-f", "/tmp/todo"}, cmd.Args)
}
