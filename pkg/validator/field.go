package validator

import (
	"slices"

	"github.com/dmitrymomot/formrules/pkg/logger"
)

// Field is one entry of the pass cache: a value snapshot bound to its parsed rules.
type Field struct {
	Subject     Subject
	DisplayName string
	Value       string
	Rules       string
	Tokens      []RuleToken
}

// Add binds a field to its rule annotation and appends the deferred check to
// the cache. An empty displayName falls back to the subject's Label when the
// subject implements Labeler. A blank annotation adds a check that always passes.
func (e *Engine) Add(subject Subject, displayName, rawRules, value string) {
	if displayName == "" {
		if l, ok := subject.(Labeler); ok {
			displayName = l.Label()
		}
	}
	e.cache = append(e.cache, Field{
		Subject:     subject,
		DisplayName: displayName,
		Value:       value,
		Rules:       rawRules,
		Tokens:      ParseRules(rawRules),
	})
}

// check evaluates the field's rules in declaration order and reports whether
// every evaluated rule passed. Under FailFast it stops at the first failure.
func (e *Engine) check(f Field, policy Policy) (bool, error) {
	passed := true
	for _, tok := range f.Tokens {
		strategy, err := e.registry.Lookup(tok.Name)
		if err != nil {
			return false, err
		}

		if strategy.Predicate(f.Value, tok.Param, f.Subject) {
			continue
		}
		passed = false

		if err := e.report(f, tok, strategy.OnError); err != nil {
			return false, err
		}
		if policy == FailFast {
			break
		}
	}
	return passed, nil
}

func (e *Engine) report(f Field, tok RuleToken, handler ErrorHandler) error {
	msg, err := e.templates.Render(tok.Name, f.DisplayName, tok.Param)
	if err != nil && handler == nil {
		return err
	}

	e.logger.Debug("rule failed", logger.Field(f.DisplayName), logger.Rule(tok.Name, tok.Param))
	e.errs.Add(ValidationError{
		Field:   f.DisplayName,
		Rule:    tok.Name,
		Param:   tok.Param,
		Value:   f.Value,
		Message: msg,
	})

	if handler != nil {
		handler(msg, tok.Param, f.Value, f.Subject)
		return nil
	}
	e.showError(msg)
	return nil
}

// Fields returns a copy of the cached fields in intake order.
func (e *Engine) Fields() []Field {
	return slices.Clone(e.cache)
}
