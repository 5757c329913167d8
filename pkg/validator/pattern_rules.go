package validator

import (
	"maps"
	"regexp"
)

// Built-in pattern names accepted by the "is" rule.
const (
	PatternNum      = "num"
	PatternTel      = "tel"
	PatternEmail    = "email"
	PatternPassword = "password"
)

var builtinPatterns = map[string]*regexp.Regexp{
	PatternNum:      regexp.MustCompile(`^\d+$`),
	PatternTel:      regexp.MustCompile(`^1[34578][0-9]{9}$`),
	PatternEmail:    regexp.MustCompile(`^[A-Za-z0-9\x{4e00}-\x{9fa5}]+@[a-zA-Z0-9_-]+(\.[a-zA-Z0-9_-]+)+$`),
	PatternPassword: regexp.MustCompile(`\d`),
}

// Patterns is a closed table of named, precompiled patterns. Rule parameters
// only select entries; they are never compiled.
type Patterns map[string]*regexp.Regexp

// DefaultPatterns returns a copy of the built-in pattern table.
func DefaultPatterns() Patterns {
	return maps.Clone(Patterns(builtinPatterns))
}

// Is returns the predicate for the "is" rule bound to this table. Unknown
// pattern names fail.
func (p Patterns) Is() Predicate {
	return func(value, param string, _ Subject) bool {
		re, ok := p[param]
		if !ok || re == nil {
			return false
		}
		return re.MatchString(value)
	}
}
