// Package termio adapts a raw terminal keystroke stream into the
// dispatch.EventSource contract the host loop expects.
package termio

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/charmbracelet/x/term"

	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/module"
)

// KeyReader reads single keystrokes from an input stream and turns each one
// into a module.Event. It implements dispatch.EventSource.
type KeyReader struct {
	r *bufio.Reader
}

// NewKeyReader builds a KeyReader over r.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: bufio.NewReader(r)}
}

const escRune = 0x1b

// Next reads the next keystroke, blocking until one is available or r is
// closed. It ignores ctx, since bufio.Reader offers no cancellable read;
// callers running interactively rely on closing stdin to unblock it.
//
// An ESC immediately followed by "[A" or "[B" (the CSI up-/down-arrow
// sequences a terminal in raw mode sends for the arrow keys) is decoded
// into a module.ArrowEvent rather than three separate key events; a bare
// ESC, or an ESC not followed by a recognised arrow sequence, is returned
// as a plain key event so the Confirm module's "esc" binding keeps working.
func (k *KeyReader) Next(_ context.Context) (module.Event, bool) {
	r, _, err := k.r.ReadRune()
	if err != nil {
		return module.Event{}, false
	}
	if r == escRune {
		if arrow, ok := k.tryReadArrow(); ok {
			return module.ArrowEvent(arrow), true
		}
	}
	return module.KeyEvent(r), true
}

// tryReadArrow peeks (without consuming unless it matches) for the two
// bytes following an ESC that together form a CSI arrow-key sequence.
func (k *KeyReader) tryReadArrow() (module.ArrowKey, bool) {
	peeked, err := k.r.Peek(2)
	if err != nil || peeked[0] != '[' {
		return module.ArrowNone, false
	}

	switch peeked[1] {
	case 'A':
		k.r.Discard(2) //nolint:errcheck // bytes were just peeked successfully
		return module.ArrowUp, true
	case 'B':
		k.r.Discard(2) //nolint:errcheck // bytes were just peeked successfully
		return module.ArrowDown, true
	default:
		return module.ArrowNone, false
	}
}

// RawMode puts f (typically os.Stdin) into raw, unbuffered, no-echo mode for
// the duration of the returned restore function, which must be called
// before the process exits.
func RawMode(f *os.File) (restore func() error, err error) {
	state, err := term.MakeRaw(f.Fd())
	if err != nil {
		return nil, err
	}
	return func() error { return term.Restore(f.Fd(), state) }, nil
}
