// Package keys declares the key bindings the List and Confirm modules
// respond to, using bubbles/key so bindings are data the help text is
// generated from, not a hand-maintained string table.
package keys

import "github.com/charmbracelet/bubbles/v2/key"

// List module bindings. MoveUp/MoveDown also match the up/down arrow keys,
// delivered as a module.ArrowEvent rather than a rune (see
// internal/listmodule, which checks Event.Arrow before falling back to
// Matches); Redo and the two swap bindings use the control-key tokens
// Matches resolves to their raw control-byte values.
var (
	MoveUp   = key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "move cursor up"))
	MoveDown = key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "move cursor down"))
	Undo     = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	Redo     = key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "redo"))
	SwapUp   = key.NewBinding(key.WithKeys("ctrl+k", "ctrl+u"), key.WithHelp("ctrl+k/ctrl+u", "move line up"))
	SwapDown = key.NewBinding(key.WithKeys("ctrl+j", "ctrl+d"), key.WithHelp("ctrl+j/ctrl+d", "move line down"))

	ActionPick   = key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pick"))
	ActionReword = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reword"))
	ActionEdit   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	ActionSquash = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "squash"))
	ActionFixup  = key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fixup"))
	ActionDrop   = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "drop"))

	OpenEditor = key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "open external editor"))
	Quit       = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
)

// Confirm module bindings.
var (
	Yes = key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes"))
	No  = key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no"))
)

// controlRunes maps the non-single-rune key tokens this package declares to
// the raw control byte a terminal in raw mode sends for them.
var controlRunes = map[string]rune{
	"esc":    0x1b,
	"ctrl+r": 0x12,
	"ctrl+k": 0x0b,
	"ctrl+u": 0x15,
	"ctrl+j": 0x0a,
	"ctrl+d": 0x04,
}

// Matches reports whether r, rendered as a single-rune key token, is one of
// b's declared keys. Named tokens such as "esc" or "ctrl+r" are matched via
// controlRunes; a token like "up"/"down" that has no raw-byte representation
// (see module.ArrowEvent) never matches here.
func Matches(r rune, b key.Binding) bool {
	for _, k := range b.Keys() {
		if cr, ok := controlRunes[k]; ok {
			if r == cr {
				return true
			}
			continue
		}
		if rs := []rune(k); len(rs) == 1 && rs[0] == r {
			return true
		}
	}
	return false
}

// Help renders a compact "key: description" footer line for each of the
// given enabled bindings.
func Help(bindings ...key.Binding) string {
	out := ""
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		if out != "" {
			out += "  "
		}
		h := b.Help()
		out += h.Key + ": " + h.Desc
	}
	return out
}
