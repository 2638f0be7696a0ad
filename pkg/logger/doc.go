// Package logger builds *slog.Logger instances with functional options,
// environment presets and transparent injection of values stored in
// context.Context.
//
// New applies the options, picks slog.NewTextHandler or slog.NewJSONHandler
// and wraps it in LogHandlerDecorator, which runs the registered
// ContextExtractor callbacks on every record.
//
// # Usage
//
//	log, err := logger.NewFromConfig(cfg, "totpctl")
//	if err != nil {
//	    return err
//	}
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "totp verified",
//	    logger.Subject(userID),
//	    logger.Counter(counter),
//	)
//
// Helper constructors in attr.go keep attribute names consistent. Error
// returns an empty attribute for a nil error, so it can be passed
// unconditionally.
package logger
