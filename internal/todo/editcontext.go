package todo

// EditContext carries an optional new action and/or new content to apply to
// a range of lines in one bulk edit.
type EditContext struct {
	action     Action
	hasAction  bool
	content    string
	hasContent bool
}

// NewEditContext returns an empty EditContext with neither field set.
func NewEditContext() EditContext {
	return EditContext{}
}

// WithAction returns a copy of the context with the action field set.
func (c EditContext) WithAction(a Action) EditContext {
	c.action = a
	c.hasAction = true
	return c
}

// WithContent returns a copy of the context with the content field set.
func (c EditContext) WithContent(content string) EditContext {
	c.content = content
	c.hasContent = true
	return c
}

// apply sets whichever fields are present on the context onto the line.
func (c EditContext) apply(l *Line) {
	if c.hasAction {
		l.SetAction(c.action)
	}
	if c.hasContent {
		l.EditContent(c.content)
	}
}
