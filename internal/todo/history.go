package todo

// historyItem is a reversible record of a single mutation to a line
// sequence. Each variant knows how to invert itself in place and what
// reciprocal item belongs on the opposite stack afterwards, so history is
// data (owned payloads), never a closure capturing the owning TodoFile.
type historyItem interface {
	// invert applies this item's inverse to lines, mutating it in place,
	// and returns the selection range to restore plus the item to push
	// onto the opposite stack.
	invert(lines *[]Line) (start, end int, reciprocal historyItem)
}

// Range mutation items keep (start, end) in the order the caller supplied
// them, possibly reversed, so undo reports the caller's original selection
// range; ordered normalizes locally wherever a slice bound is needed.

type addItem struct{ start, end int }

func (a addItem) invert(lines *[]Line) (int, int, historyItem) {
	lo, hi := ordered(a.start, a.end)

	removed := make([]Line, hi-lo+1)
	copy(removed, (*lines)[lo:hi+1])

	*lines = append((*lines)[:lo:lo], (*lines)[hi+1:]...)

	return a.start, a.end, removeItem{start: a.start, end: a.end, removed: removed}
}

type removeItem struct {
	start, end int
	removed    []Line // always in ascending line order
}

func (r removeItem) invert(lines *[]Line) (int, int, historyItem) {
	lo, _ := ordered(r.start, r.end)

	out := make([]Line, 0, len(*lines)+len(r.removed))
	out = append(out, (*lines)[:lo]...)
	out = append(out, r.removed...)
	out = append(out, (*lines)[lo:]...)
	*lines = out

	return r.start, r.end, addItem{start: r.start, end: r.end}
}

type modifyItem struct {
	start, end int
	previous   []Line // always in ascending line order
}

func (m modifyItem) invert(lines *[]Line) (int, int, historyItem) {
	lo, hi := ordered(m.start, m.end)

	current := make([]Line, hi-lo+1)
	copy(current, (*lines)[lo:hi+1])

	copy((*lines)[lo:hi+1], m.previous)

	return m.start, m.end, modifyItem{start: m.start, end: m.end, previous: current}
}

func ordered(s, e int) (lo, hi int) {
	if s > e {
		return e, s
	}
	return s, e
}

type swapUpItem struct{ start, end int }

// invert undoes an up-swap recorded at the range's post-swap position by
// swapping that same range back down, then hands back a swapDownItem at the
// range's pre-swap position so a subsequent redo reinstates the up-swap and
// undo+redo always restores identical lines. The returned selection range is
// where the swapped lines land after the inverse swap.
func (s swapUpItem) invert(lines *[]Line) (int, int, historyItem) {
	swapDown(*lines, s.start, s.end)
	return s.start + 1, s.end + 1, swapDownItem{start: s.start + 1, end: s.end + 1}
}

type swapDownItem struct{ start, end int }

func (d swapDownItem) invert(lines *[]Line) (int, int, historyItem) {
	swapUp(*lines, d.start, d.end)
	return d.start - 1, d.end - 1, swapUpItem{start: d.start - 1, end: d.end - 1}
}

// swapUp moves the element at s-1 to position e, shifting lines[s..e] down
// by one index each.
func swapUp(lines []Line, s, e int) {
	tmp := lines[s-1]
	copy(lines[s-1:e], lines[s:e+1])
	lines[e] = tmp
}

// swapDown moves the element at e+1 to position s, shifting lines[s..e] up
// by one index each.
func swapDown(lines []Line, s, e int) {
	tmp := lines[e+1]
	copy(lines[s+1:e+2], lines[s:e+1])
	lines[s] = tmp
}

// History is a bounded undo/redo stack of reversible operations over a line
// sequence.
type History struct {
	undoLimit int
	undo      []historyItem
	redo      []historyItem
}

// NewHistory constructs an empty History capped at undoLimit entries per
// stack. An undoLimit of 0 or less leaves both stacks uncapped.
func NewHistory(undoLimit int) *History {
	return &History{undoLimit: undoLimit}
}

// Record pushes item onto the undo stack, evicting the oldest entry if over
// the configured limit, and clears the redo stack.
func (h *History) Record(item historyItem) {
	h.undo = push(h.undo, item, h.undoLimit)
	h.redo = h.redo[:0]
}

// Reset clears both stacks.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}

// Undo pops the most recent undo item, applies its inverse to lines, and
// pushes the reciprocal onto the redo stack. ok is false if there was
// nothing to undo.
func (h *History) Undo(lines *[]Line) (start, end int, ok bool) {
	item, rest, found := pop(h.undo)
	if !found {
		return 0, 0, false
	}
	h.undo = rest

	start, end, reciprocal := item.invert(lines)
	h.redo = push(h.redo, reciprocal, h.undoLimit)
	return start, end, true
}

// Redo is the symmetric counterpart of Undo.
func (h *History) Redo(lines *[]Line) (start, end int, ok bool) {
	item, rest, found := pop(h.redo)
	if !found {
		return 0, 0, false
	}
	h.redo = rest

	start, end, reciprocal := item.invert(lines)
	h.undo = push(h.undo, reciprocal, h.undoLimit)
	return start, end, true
}

func push(stack []historyItem, item historyItem, limit int) []historyItem {
	stack = append(stack, item)
	if limit > 0 && len(stack) > limit {
		stack = append(stack[:0:0], stack[len(stack)-limit:]...)
	}
	return stack
}

func pop(stack []historyItem) (item historyItem, rest []historyItem, ok bool) {
	if len(stack) == 0 {
		return nil, stack, false
	}
	last := len(stack) - 1
	return stack[last], stack[:last], true
}
