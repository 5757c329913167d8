package validator

// Selected passes when the value differs from the placeholder option given as param.
func Selected(value, param string, _ Subject) bool {
	return value != param
}

// Checked passes when the subject reports a checked state. The parameter is ignored.
func Checked(_, _ string, subject Subject) bool {
	c, ok := subject.(Checker)
	return ok && c.Checked()
}

// Same passes when the value equals the value of the field located by param.
// A subject that cannot locate fields, or a selector that matches nothing, fails.
func Same(value, param string, subject Subject) bool {
	l, ok := subject.(Locator)
	if !ok {
		return false
	}
	other, found := l.Lookup(param)
	return found && other == value
}
