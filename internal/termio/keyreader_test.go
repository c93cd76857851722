package termio

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/module"
)

func TestKeyReaderReadsRunesInOrder(t *testing.T) {
	r := NewKeyReader(strings.NewReader("jjq"))
	ctx := context.Background()

	var got []rune
	for {
		e, ok := r.Next(ctx)
		if !ok {
			break
		}
		got = append(got, e.Key)
	}

	assert.Equal(t, []rune{'j', 'j', 'q'}, got)
}

func TestKeyReaderEOFReturnsNotOK(t *testing.T) {
	r := NewKeyReader(strings.NewReader(""))
	_, ok := r.Next(context.Background())
	assert.False(t, ok)
}

func TestKeyReaderImplementsModuleEvent(t *testing.T) {
	r := NewKeyReader(strings.NewReader("p"))
	e, ok := r.Next(context.Background())
	assert.True(t, ok)
	assert.Equal(t, module.KeyEvent('p'), e)
}

func TestKeyReaderDecodesArrowKeys(t *testing.T) {
	r := NewKeyReader(strings.NewReader("\x1b[A\x1b[B"))

	e, ok := r.Next(context.Background())
	assert.True(t, ok)
	assert.Equal(t, module.ArrowEvent(module.ArrowUp), e)

	e, ok = r.Next(context.Background())
	assert.True(t, ok)
	assert.Equal(t, module.ArrowEvent(module.ArrowDown), e)
}

func TestKeyReaderBareEscIsAPlainKeyEvent(t *testing.T) {
	r := NewKeyReader(strings.NewReader("\x1bq"))

	e, ok := r.Next(context.Background())
	assert.True(t, ok)
	assert.Equal(t, module.KeyEvent(0x1b), e)

	e, ok = r.Next(context.Background())
	assert.True(t, ok)
	assert.Equal(t, module.KeyEvent('q'), e)
}

func TestKeyReaderEscFollowedByUnrecognisedSequenceIsPlainEsc(t *testing.T) {
	r := NewKeyReader(strings.NewReader("\x1b[Zq"))

	e, ok := r.Next(context.Background())
	assert.True(t, ok)
	assert.Equal(t, module.KeyEvent(0x1b), e)

	e, ok = r.Next(context.Background())
	assert.True(t, ok)
	assert.Equal(t, module.KeyEvent('['), e)
}
