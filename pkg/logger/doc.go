// Package logger builds the slog loggers used by the mailer and the preview
// command.
//
//	log := logger.New(logger.Config{Level: "debug"}, logger.LanguageExtractor)
//	log.InfoContext(i18n.ContextWithLanguage(ctx, "fr"), "mail assembled")
//	// {"level":"INFO","msg":"mail assembled","lang":"fr"}
//
// NewWithSentry also forwards warnings and errors to Sentry when a DSN is
// configured. NewNope discards everything and is the library default.
package logger
