package validator

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/dmitrymomot/formrules/pkg/logger"
)

// Policy decides whether a pass stops at the first failure.
type Policy int

const (
	// FailFast stops at the first failing rule of a field and at the first failing field.
	FailFast Policy = iota
	// CollectAll evaluates every rule of every field.
	CollectAll
)

func (p Policy) String() string {
	if p == CollectAll {
		return "collect_all"
	}
	return "fail_fast"
}

// PolicyFor maps the "continuous" flag onto a Policy.
func PolicyFor(continuous bool) Policy {
	if continuous {
		return CollectAll
	}
	return FailFast
}

// Engine owns a strategy registry and the cache of fields for validation passes.
// It is synchronous and must not be used from several goroutines at once.
type Engine struct {
	registry  *Registry
	templates Templates
	policy    Policy
	submit    SubmitFunc
	showError func(message string)
	logger    *slog.Logger

	cache []Field
	errs  ValidationErrors
}

// New creates an engine seeded with the built-in strategies, then applies the
// custom strategies from opts.
func New(opts ...Option) *Engine {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	log := cfg.logger
	if log == nil {
		log = slog.Default()
	}

	patterns := DefaultPatterns()
	maps.Copy(patterns, cfg.patterns)

	templates := DefaultTemplates()
	templates.Merge(cfg.templates)

	e := &Engine{
		registry:  NewRegistry(),
		templates: templates,
		policy:    PolicyFor(cfg.continuous),
		submit:    cfg.submit,
		showError: cfg.showError,
		logger:    log,
	}
	if e.showError == nil {
		e.showError = func(message string) {
			log.Info("validation failed", slog.String("message", message))
		}
	}

	e.registry.Extend(builtinStrategies(patterns))
	for _, s := range cfg.strategies {
		e.registry.Extend(s)
	}
	return e
}

func builtinStrategies(patterns Patterns) map[string]Strategy {
	return map[string]Strategy{
		"required":  {Predicate: Required},
		"minLength": {Predicate: MinLength},
		"maxLength": {Predicate: MaxLength},
		"length":    {Predicate: Length},
		"is":        {Predicate: patterns.Is()},
		"selected":  {Predicate: Selected},
		"checked":   {Predicate: Checked},
		"same":      {Predicate: Same},
	}
}

// Extend registers or overrides strategies. See Registry.Extend.
func (e *Engine) Extend(strategies map[string]Strategy) {
	e.registry.Extend(strategies)
}

// Registry exposes the engine's strategy registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Templates returns a copy of the engine's message templates.
func (e *Engine) Templates() Templates {
	return maps.Clone(e.templates)
}

// Submit returns the configured post-success action, or nil.
func (e *Engine) Submit() SubmitFunc {
	return e.submit
}

// Policy returns the default policy chosen at construction.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Run executes every cached check and reports whether at least one field failed.
// Under FailFast the pass stops at the first failing field. Configuration errors
// (unknown rule, missing template) abort the pass and are returned; Errors is
// then empty.
func (e *Engine) Run(policy Policy) (bool, error) {
	e.errs = nil
	failed := false

	for _, f := range e.cache {
		ok, err := e.check(f, policy)
		if err != nil {
			e.logger.Error("validation pass aborted",
				logger.Field(f.DisplayName),
				logger.Error(err),
			)
			e.errs = nil
			return failed, err
		}
		if !ok {
			failed = true
			if policy == FailFast {
				break
			}
		}
	}

	e.logger.Debug("validation pass completed",
		logger.Policy(policy),
		slog.Int("fields", len(e.cache)),
		slog.Int("failures", len(e.errs)),
		slog.Bool("failed", failed),
	)
	return failed, nil
}

// RunContinuous is Run with the policy chosen by the continuous flag.
func (e *Engine) RunContinuous(continuous bool) (bool, error) {
	return e.Run(PolicyFor(continuous))
}

// Validate runs with the default policy.
func (e *Engine) Validate() (bool, error) {
	return e.Run(e.policy)
}

// Errors returns the failures recorded by the latest pass.
func (e *Engine) Errors() ValidationErrors {
	return slices.Clone(e.errs)
}

// Reset drops every cached field and recorded failure.
func (e *Engine) Reset() {
	e.cache = nil
	e.errs = nil
}
