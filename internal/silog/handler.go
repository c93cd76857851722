package silog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// handler is a slog.Handler that writes a compact, level-colored
// logfmt-style line per record: "level message key=value key=value".
// Empty attributes are skipped.
type handler struct {
	lvl   slog.Leveler
	outMu *sync.Mutex
	out   io.Writer

	levelStyles map[slog.Level]lipgloss.Style
	attrs       []slog.Attr
}

var _ slog.Handler = (*handler)(nil)

// NewHandler builds a [slog.Handler] writing log lines to out, at or above
// lvl. Level names are colored only when out is a terminal.
func NewHandler(out io.Writer, lvl Level) slog.Handler {
	h := &handler{
		lvl:   lvl,
		outMu: new(sync.Mutex),
		out:   out,
	}

	// The output writer must be file-like to check if it is a TTY.
	if fileLike, ok := out.(interface{ Fd() uintptr }); ok && isatty.IsTerminal(fileLike.Fd()) {
		h.levelStyles = map[slog.Level]lipgloss.Style{
			slog.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			slog.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
			slog.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
			slog.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		}
	}

	return h
}

func (h *handler) Enabled(_ context.Context, lvl slog.Level) bool {
	return h.lvl.Level() <= lvl
}

func (h *handler) Handle(_ context.Context, rec slog.Record) error {
	var buf bytes.Buffer

	buf.WriteString(h.styleFor(rec.Level).Render(Level(rec.Level).String()))
	buf.WriteByte(' ')
	buf.WriteString(rec.Message)

	for _, a := range h.attrs {
		if a.Equal(slog.Attr{}) {
			continue
		}
		fmt.Fprintf(&buf, " %s=%v", a.Key, a.Value)
	}
	rec.Attrs(func(a slog.Attr) bool {
		if !a.Equal(slog.Attr{}) {
			fmt.Fprintf(&buf, " %s=%v", a.Key, a.Value)
		}
		return true
	})
	buf.WriteByte('\n')

	h.outMu.Lock()
	defer h.outMu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *handler) styleFor(lvl slog.Level) lipgloss.Style {
	if s, ok := h.levelStyles[lvl]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

func (h *handler) WithGroup(string) slog.Handler {
	// Groups are not meaningful for this tool's flat, single-pass
	// logging; attributes from a grouped logger are still recorded,
	// just without a name prefix.
	return h
}
