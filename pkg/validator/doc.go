// Package validator implements a declarative validation engine driven by rule
// annotations: short strings such as "required minLength:4" attached to input
// fields.
//
// Each rule name resolves through a Registry to a Strategy: a Predicate that
// decides whether a value is acceptable and an optional ErrorHandler that
// receives a rendered message when it is not. Built-in strategies cover
// required, minLength, maxLength, length, is, selected, checked and same; any of
// them can be overridden, and new ones added, with Engine.Extend or the
// WithStrategies option.
//
// # Architecture
//
//   - ParseRules splits an annotation on spaces into RuleToken values; each item
//     is split on its first colon into a name and an optional parameter.
//   - Engine.Add parses the annotation and stores the field together with a
//     snapshot of its value.
//   - Engine.Run evaluates the cached fields in order under a Policy. FailFast
//     stops at the first failing rule of a field and at the first failing field;
//     CollectAll evaluates everything.
//   - Failures are rendered from Templates (":name" and ":val" placeholders) and
//     handed to the rule's handler, or to the engine's default error sink.
//
// # Usage
//
//	engine := validator.New(
//	    validator.WithErrorSink(func(msg string) { fmt.Println(msg) }),
//	)
//	engine.Add(nil, "Username", "required minLength:3", username)
//	engine.Add(form, "Password", "required minLength:8 is:password", password)
//	engine.Add(form, "Confirm", "same:password", confirm)
//
//	failed, err := engine.Run(validator.FailFast)
//	if err != nil {
//	    // unknown rule or missing template: a configuration bug
//	}
//	if failed {
//	    for _, e := range engine.Errors() {
//	        // e.Field, e.Rule, e.Message
//	    }
//	}
//
// Run returns true when at least one field failed.
//
// # Subjects
//
// The subject passed to Add is opaque to the engine and is handed to every
// predicate and handler. The checked and same strategies probe it through the
// Checker and Locator interfaces; Labeler supplies a display name when Add is
// called with an empty one.
//
// # Error Handling
//
// Value failures are never returned as errors. They reach handlers and are
// recorded in ValidationErrors, available from Engine.Errors after a pass.
// Configuration problems are returned from Run: *UnknownRuleError (matches
// ErrUnknownRule) for a rule without a predicate and *MissingTemplateError
// (matches ErrMissingTemplate) for a failing rule that has neither a template
// nor its own handler.
//
// The engine is not safe for concurrent use; create one per validation session.
package validator
