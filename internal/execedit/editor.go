// Package execedit provides the host-side default implementation of
// launching an external command, used by the girt entrypoint to satisfy
// the module.Artifact{Kind: KindExternalCommand} contract the core package
// emits but never executes itself.
package execedit

import (
	"os"
	"os/exec"
)

// Command builds an *exec.Cmd for program with args, attaching the current
// process's stdin/stdout/stderr so the child gets exclusive control of the
// terminal until it exits.
func Command(program string, args ...string) *exec.Cmd {
	cmd := exec.Command(program, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}
