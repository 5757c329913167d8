// Package logger builds *slog.Logger instances from functional options and
// provides attribute helpers that keep key names consistent across packages.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("formrules"),
//	    logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
//	)
//	log.Debug("rule failed", logger.Field("Email"), logger.Rule("is", "email"))
//
// New writes JSON at info level to stderr unless configured otherwise.
// WithFormat panics on unknown formats so that misconfiguration stops startup.
//
// Error and Errors return an empty attribute for nil errors, which slog drops,
// so callers can pass them without a nil check.
package logger
