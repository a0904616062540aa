// Package logging provides structured logging configuration for httpstub.
//
// It wraps log/slog so every component logs the same way. Components accept
// a *slog.Logger in their constructor or via an option; when none is given
// they use logging.Nop().
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatText,
//	})
//	logger.Debug("stub matched", "method", "GET", "url", url)
//
// Text format is meant for humans running tests locally; JSON for CI log
// aggregation.
package logging
