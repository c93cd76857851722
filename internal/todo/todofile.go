package todo

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"strings"
	"unicode/utf8"
)

// FileError is the single error kind returned for any I/O failure reading or
// writing the rebase-todo file: an underlying I/O error, a UTF-8 decode
// error, or a parse error, all carrying the file path that failed.
type FileError struct {
	File  string
	Cause error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("unable to read file %s: %v", e.File, e.Cause)
}

func (e *FileError) Unwrap() error { return e.Cause }

var errInvalidUTF8 = errors.New("file is not valid UTF-8")

// TodoFile is the in-memory rebase plan: an ordered sequence of [Line]s with
// a selection cursor and undo/redo [History], persisted to and from a
// Git-compatible rebase-todo file.
type TodoFile struct {
	filepath     string
	commentChar  string
	lines        []Line
	isNoop       bool
	selectedLine int
	history      *History
}

// New constructs an empty TodoFile for the given path.
func New(path string, undoLimit int, commentChar string) *TodoFile {
	return &TodoFile{
		filepath:    path,
		commentChar: commentChar,
		history:     NewHistory(undoLimit),
	}
}

// GetFilepath returns the path this TodoFile was constructed with.
func (t *TodoFile) GetFilepath() string { return t.filepath }

// IsEmpty reports whether there are no lines.
func (t *TodoFile) IsEmpty() bool { return len(t.lines) == 0 }

// IsNoop reports whether the loaded file consisted solely of the "noop"
// sentinel.
func (t *TodoFile) IsNoop() bool { return t.isNoop }

// Load reads the todo file from disk, discards comment and blank lines,
// parses the rest, and installs the result via SetLines.
//
// The first parse error aborts the load; the TodoFile is left unchanged.
func (t *TodoFile) Load() error {
	raw, err := os.ReadFile(t.filepath)
	if err != nil {
		return &FileError{File: t.filepath, Cause: err}
	}

	if !utf8.Valid(raw) {
		return &FileError{File: t.filepath, Cause: errInvalidUTF8}
	}

	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	rawLines := strings.Split(text, "\n")

	parsed := make([]Line, 0, len(rawLines))
	for _, rawLine := range rawLines {
		if rawLine == "" {
			continue
		}
		if strings.HasPrefix(rawLine, t.commentChar) {
			continue
		}

		line, err := Parse(rawLine)
		if err != nil {
			return &FileError{File: t.filepath, Cause: err}
		}
		parsed = append(parsed, line)
	}

	t.SetLines(parsed)
	return nil
}

// Write truncates and rewrites the file from the current lines, or the
// literal "noop" sentinel when IsNoop is true.
func (t *TodoFile) Write() error {
	f, err := os.Create(t.filepath)
	if err != nil {
		return &FileError{File: t.filepath, Cause: err}
	}
	defer f.Close()

	if t.isNoop {
		if _, err := f.WriteString("noop\n"); err != nil {
			return &FileError{File: t.filepath, Cause: err}
		}
		return nil
	}

	texts := make([]string, len(t.lines))
	for i := range t.lines {
		texts[i] = t.lines[i].ToText()
	}

	content := strings.Join(texts, "\n")
	if len(texts) > 0 {
		content += "\n"
	}

	if _, err := f.WriteString(content); err != nil {
		return &FileError{File: t.filepath, Cause: err}
	}
	return nil
}

// SetLines installs newLines as the plan.
//
// A non-empty slice whose first element is the Noop sentinel becomes the
// noop plan (lines cleared, IsNoop true); otherwise any Noop entries are
// filtered out. The selection is clamped and history is reset.
func (t *TodoFile) SetLines(newLines []Line) {
	if len(newLines) > 0 && newLines[0].Action() == Noop {
		t.isNoop = true
		t.lines = nil
	} else {
		t.isNoop = false
		t.lines = make([]Line, 0, len(newLines))
		for _, l := range newLines {
			if l.Action() == Noop {
				continue
			}
			t.lines = append(t.lines, l)
		}
	}

	t.clampSelection()
	t.history.Reset()
}

// GetLine returns the line at index i, or false if out of range.
func (t *TodoFile) GetLine(i int) (Line, bool) {
	if i < 0 || i >= len(t.lines) {
		return Line{}, false
	}
	return t.lines[i], true
}

// GetLinesOwned returns a defensive copy of the current lines.
func (t *TodoFile) GetLinesOwned() []Line {
	out := make([]Line, len(t.lines))
	copy(out, t.lines)
	return out
}

// LinesIter returns a lazy, borrowed sequence over the current lines.
func (t *TodoFile) LinesIter() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for _, l := range t.lines {
			if !yield(l) {
				return
			}
		}
	}
}

// GetSelectedLineIndex returns the current selection cursor.
func (t *TodoFile) GetSelectedLineIndex() int { return t.selectedLine }

// GetSelectedLine returns the line at the selection cursor, or false if the
// plan is empty.
func (t *TodoFile) GetSelectedLine() (Line, bool) {
	return t.GetLine(t.selectedLine)
}

// GetMaxSelectedLineIndex returns the highest valid selection index: 0 when
// the plan is empty, otherwise len-1.
func (t *TodoFile) GetMaxSelectedLineIndex() int {
	if len(t.lines) == 0 {
		return 0
	}
	return len(t.lines) - 1
}

// SetSelectedLineIndex clamps i to [0, GetMaxSelectedLineIndex] and installs
// it as the selection cursor.
func (t *TodoFile) SetSelectedLineIndex(i int) {
	t.selectedLine = clamp(i, 0, t.GetMaxSelectedLineIndex())
}

func (t *TodoFile) clampSelection() {
	t.selectedLine = clamp(t.selectedLine, 0, t.GetMaxSelectedLineIndex())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampRange clamps both endpoints to [0, maxIdx] without reordering them;
// lo and hi are the same pair in ascending order for slicing. The clamped
// original order is what goes into history, so undo reports the range the
// caller supplied.
func clampRange(s, e, maxIdx int) (cs, ce, lo, hi int) {
	cs = clamp(s, 0, maxIdx)
	ce = clamp(e, 0, maxIdx)
	lo, hi = cs, ce
	if lo > hi {
		lo, hi = hi, lo
	}
	return cs, ce, lo, hi
}

// AddLine inserts line at min(index, len), recording an undoable Add.
func (t *TodoFile) AddLine(index int, line Line) {
	i := index
	if i > len(t.lines) {
		i = len(t.lines)
	}
	if i < 0 {
		i = 0
	}

	t.lines = append(t.lines, Line{})
	copy(t.lines[i+1:], t.lines[i:])
	t.lines[i] = line

	t.history.Record(addItem{start: i, end: i})
	t.clampSelection()
}

// RemoveLines removes the inclusive, index-clamped range [s,e] (accepting
// reversed arguments), recording an undoable Remove. A no-op on an empty
// plan.
func (t *TodoFile) RemoveLines(s, e int) {
	if len(t.lines) == 0 {
		return
	}
	start, end, lo, hi := clampRange(s, e, len(t.lines)-1)

	removed := make([]Line, hi-lo+1)
	copy(removed, t.lines[lo:hi+1])
	t.lines = append(t.lines[:lo:lo], t.lines[hi+1:]...)

	t.history.Record(removeItem{start: start, end: end, removed: removed})
	t.clampSelection()
}

// UpdateRange applies ctx to every line in the inclusive, index-clamped
// range [s,e], recording an undoable Modify. A no-op on an empty plan.
func (t *TodoFile) UpdateRange(s, e int, ctx EditContext) {
	if len(t.lines) == 0 {
		return
	}
	start, end, lo, hi := clampRange(s, e, len(t.lines)-1)

	snapshot := make([]Line, hi-lo+1)
	copy(snapshot, t.lines[lo:hi+1])

	for i := lo; i <= hi; i++ {
		ctx.apply(&t.lines[i])
	}

	t.history.Record(modifyItem{start: start, end: end, previous: snapshot})
}

// SwapRangeUp swaps the inclusive range [s,e] one position toward index 0.
// It returns false if the plan is empty or either argument is already at
// the top (0), without recording history.
func (t *TodoFile) SwapRangeUp(s, e int) bool {
	if len(t.lines) == 0 || s == 0 || e == 0 {
		return false
	}
	_, _, lo, hi := clampRange(s, e, len(t.lines)-1)
	if lo == 0 {
		return false
	}

	swapUp(t.lines, lo, hi)
	t.history.Record(swapUpItem{start: lo - 1, end: hi - 1})
	return true
}

// SwapRangeDown swaps the inclusive range [s,e] one position toward the end.
// It returns false if the plan is empty or either argument is already at
// the bottom (len-1), without recording history.
func (t *TodoFile) SwapRangeDown(s, e int) bool {
	if len(t.lines) == 0 {
		return false
	}
	last := len(t.lines) - 1
	if s == last || e == last {
		return false
	}
	_, _, lo, hi := clampRange(s, e, last)
	if hi == last {
		return false
	}

	swapDown(t.lines, lo, hi)
	t.history.Record(swapDownItem{start: lo + 1, end: hi + 1})
	return true
}

// Undo reverses the most recently recorded mutation, clamps the selection,
// and returns the range reported by [History.Undo], if any was recorded, so
// the caller can reposition the selection to it.
func (t *TodoFile) Undo() (start, end int, ok bool) {
	start, end, ok = t.history.Undo(&t.lines)
	if ok {
		t.clampSelection()
	}
	return start, end, ok
}

// Redo reverses the most recent Undo.
func (t *TodoFile) Redo() (start, end int, ok bool) {
	start, end, ok = t.history.Redo(&t.lines)
	if ok {
		t.clampSelection()
	}
	return start, end, ok
}
