package validator

import (
	"context"
	"log/slog"
	"regexp"
)

// SubmitFunc is the optional post-success action. The engine never calls it;
// hosts invoke it after a passing run and do not wait for it.
type SubmitFunc func(ctx context.Context, fields []Field)

// Option configures an Engine.
type Option func(*config)

type config struct {
	strategies []map[string]Strategy
	templates  Templates
	patterns   Patterns
	continuous bool
	submit     SubmitFunc
	showError  func(message string)
	logger     *slog.Logger
}

// WithStrategies registers custom strategies on top of the built-ins.
// Repeated options apply in order.
func WithStrategies(strategies map[string]Strategy) Option {
	return func(c *config) {
		if len(strategies) > 0 {
			c.strategies = append(c.strategies, strategies)
		}
	}
}

// WithContinuous selects the default policy used by Validate:
// CollectAll when true, FailFast otherwise.
func WithContinuous(continuous bool) Option {
	return func(c *config) { c.continuous = continuous }
}

// WithSubmit sets the post-success action exposed through Engine.Submit.
func WithSubmit(fn SubmitFunc) Option {
	return func(c *config) { c.submit = fn }
}

// WithErrorSink sets the default error sink used for rules without their own
// handler. Nil is ignored.
func WithErrorSink(fn func(message string)) Option {
	return func(c *config) {
		if fn != nil {
			c.showError = fn
		}
	}
}

// WithTemplates overrides or adds message templates.
func WithTemplates(t Templates) Option {
	return func(c *config) {
		if c.templates == nil {
			c.templates = make(Templates, len(t))
		}
		c.templates.Merge(t)
	}
}

// WithPattern adds a named pattern usable as "is:<name>". Nil patterns are ignored.
func WithPattern(name string, re *regexp.Regexp) Option {
	return func(c *config) {
		if name == "" || re == nil {
			return
		}
		if c.patterns == nil {
			c.patterns = make(Patterns)
		}
		c.patterns[name] = re
	}
}

// WithLogger sets the logger used for diagnostics and by the default error sink.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
