package validator

import "sort"

// Subject is the opaque field handle supplied by the host. The engine passes it
// through to predicates and handlers without interpreting it.
type Subject any

// Checker is implemented by subjects that carry a checked state (checkboxes, radios).
type Checker interface {
	Checked() bool
}

// Locator is implemented by subjects able to read the value of another field
// identified by a selector.
type Locator interface {
	Lookup(selector string) (string, bool)
}

// Labeler is implemented by subjects that know their own display name.
type Labeler interface {
	Label() string
}

// Predicate reports whether value satisfies a rule with the given parameter.
type Predicate func(value, param string, subject Subject) bool

// ErrorHandler receives the rendered message of a failed rule.
type ErrorHandler func(message, param, value string, subject Subject)

// Strategy pairs a predicate with an optional error handler. A nil member means
// "not supplied" when extending a registry.
type Strategy struct {
	Predicate Predicate
	OnError   ErrorHandler
}

// Registry maps rule names to strategies. It is not safe for concurrent mutation.
type Registry struct {
	predicates map[string]Predicate
	handlers   map[string]ErrorHandler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		predicates: make(map[string]Predicate),
		handlers:   make(map[string]ErrorHandler),
	}
}

// Extend registers strategies. Supplied predicates and handlers overwrite the
// existing ones independently; omitted members keep their current value.
func (r *Registry) Extend(strategies map[string]Strategy) {
	for name, s := range strategies {
		if s.Predicate != nil {
			r.predicates[name] = s.Predicate
		}
		if s.OnError != nil {
			r.handlers[name] = s.OnError
		}
	}
}

// Lookup returns the strategy registered under name. It fails with
// *UnknownRuleError when no predicate exists; OnError may be nil.
func (r *Registry) Lookup(name string) (Strategy, error) {
	p, ok := r.predicates[name]
	if !ok {
		return Strategy{}, &UnknownRuleError{Rule: name}
	}
	return Strategy{Predicate: p, OnError: r.handlers[name]}, nil
}

// Has reports whether a predicate is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.predicates[name]
	return ok
}

// Names returns registered rule names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.predicates))
	for name := range r.predicates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
