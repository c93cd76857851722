package todo

import (
	"fmt"
	"strings"
)

// ParseError reports why a line of text could not be parsed into a [Line].
type ParseError struct {
	// Text is the original line that failed to parse.
	Text string

	// Reason describes the specific problem.
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse rebase line %q: %s", e.Text, e.Reason)
}

// Line is a single parsed rebase instruction.
//
// A Line constructed by [Parse] round-trips back to the same text in
// canonical form (long action name, fields joined by single spaces) via
// [Line.ToText] unless it is explicitly edited with [Line.SetAction] or
// [Line.EditContent].
type Line struct {
	action  Action
	hash    string
	content string
	mutated bool
}

// Parse parses a single non-comment, non-blank line of a rebase-todo file.
//
// It fails when the first whitespace-separated token is not a recognised
// action keyword (long name or short alias), or when the action's required
// fields are not present.
func Parse(text string) (Line, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Line{}, &ParseError{Text: text, Reason: "empty line"}
	}

	first := fields[0]
	if first == "noop" {
		if len(fields) != 1 {
			return Line{}, &ParseError{Text: text, Reason: "noop takes no fields"}
		}
		return Line{action: Noop}, nil
	}

	action, ok := parseActionKeyword(first)
	if !ok {
		return Line{}, &ParseError{Text: text, Reason: fmt.Sprintf("unrecognised action %q", first)}
	}

	rest := fields[1:]

	var hash, content string
	if action.HasHash() {
		if len(rest) == 0 {
			return Line{}, &ParseError{
				Text:   text,
				Reason: fmt.Sprintf("%s requires a commit hash", action),
			}
		}
		hash = rest[0]
		content = strings.Join(rest[1:], " ")
	} else {
		if action.RequiresContent() && len(rest) == 0 {
			return Line{}, &ParseError{
				Text:   text,
				Reason: fmt.Sprintf("%s requires content", action),
			}
		}
		content = strings.Join(rest, " ")
	}

	return Line{action: action, hash: hash, content: content}, nil
}

// Action returns the line's instruction kind.
func (l *Line) Action() Action { return l.action }

// Hash returns the commit hash field, or "" for actions that do not carry
// one.
func (l *Line) Hash() string { return l.hash }

// Content returns the content field: a commit subject, command body, label
// name, or "" depending on the action.
func (l *Line) Content() string { return l.content }

// Mutated reports whether the line's action or content has been changed
// since it was parsed.
func (l *Line) Mutated() bool { return l.mutated }

// ToText renders the line back to its canonical textual form:
// "<action-long-name> [<hash>] [<content>]", fields joined by single spaces
// with no trailing whitespace.
func (l *Line) ToText() string {
	if l.action == Noop {
		return "noop"
	}

	parts := make([]string, 0, 3)
	parts = append(parts, l.action.String())
	if l.hash != "" && l.action.HasHash() {
		parts = append(parts, l.hash)
	}
	if l.content != "" {
		parts = append(parts, l.content)
	}
	return strings.Join(parts, " ")
}

// SetAction changes the line's action.
//
// It is a no-op if the action is unchanged. Switching actions never touches
// the existing hash or content; ToText emits only the fields relevant to
// the new action.
func (l *Line) SetAction(a Action) {
	if l.action == a {
		return
	}
	l.action = a
	l.mutated = true
}

// EditContent overwrites the line's content field.
func (l *Line) EditContent(content string) {
	l.content = content
	l.mutated = true
}

// clone returns a value copy of the line, safe to store in a history
// snapshot independent of subsequent mutation of the original.
func (l Line) clone() Line { return l }
