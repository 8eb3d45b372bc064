// Package logger builds *slog.Logger values from functional options and adds
// attribute helpers so field names stay consistent across the code base.
//
// New picks slog.NewTextHandler or slog.NewJSONHandler from the configured
// Format, applies static attributes, and wraps the result in
// LogHandlerDecorator, which runs registered ContextExtractor callbacks on
// every Handle call.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "vanitystore"),
//	    logger.WithOutput(os.Stderr),
//	)
//	log.InfoContext(ctx, "address saved",
//	    logger.Address(rec.Address),
//	    logger.Pattern(rec.Pattern),
//	)
//
// The default output is os.Stderr so that command output on stdout stays
// machine-readable.
//
// Error and Errors produce attributes only for non-nil errors, which allows
//
//	log.Info("closed", logger.Error(err))
//
// without a nil check.
package logger
