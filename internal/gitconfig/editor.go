// Package gitconfig resolves the editor command template to hand to the
// external-editor module, following the same precedence Git itself uses to
// pick a sequence editor.
package gitconfig

import (
	"context"
	"os"
	"os/exec"
	"strings"
)

// EditorCommand resolves the editor command template in the order Git
// itself checks for a sequence editor: $GIT_SEQUENCE_EDITOR, "git config
// core.editor", $GIT_EDITOR, $VISUAL, $EDITOR. It returns "" if none are
// set, which the external-editor module treats as "no editor configured".
func EditorCommand(ctx context.Context, dir string) string {
	if v := os.Getenv("GIT_SEQUENCE_EDITOR"); v != "" {
		return v
	}

	if v, err := coreEditor(ctx, dir); err == nil && v != "" {
		return v
	}

	for _, key := range []string{"GIT_EDITOR", "VISUAL", "EDITOR"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}

	return ""
}

func coreEditor(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "config", "core.editor")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		// A missing config key exits non-zero; treat that the same
		// as "not configured" rather than an error.
		return "", nil //nolint:nilerr
	}
	return strings.TrimSpace(string(out)), nil
}
