// Package logger builds the process-wide [log/slog] logger.
//
// Output is JSON or text on the given writer at the configured level. Context
// extractors add request-scoped attributes, such as the request id and the
// routing rule that handled a request, to every record logged with a
// context. When a Sentry DSN is configured, errors also become Sentry issues
// and warnings are kept as Sentry logs.
//
//	log, flush, err := logger.New(cfg, os.Stdout, requestIDExtractor)
//	if err != nil {
//		return err
//	}
//	defer flush(2 * time.Second)
//
// Extractors return false to skip an attribute:
//
//	func(ctx context.Context) (slog.Attr, bool) {
//		id, ok := ctx.Value(key{}).(string)
//		return slog.String("request_id", id), ok && id != ""
//	}
package logger
