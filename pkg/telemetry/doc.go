// Package telemetry provides structured logging for jenconf.
//
// It wraps zerolog with component child loggers and context propagation
// so the reconciler and the CLI share one configured logger.
//
// # Usage
//
// Initialize logging at application startup:
//
//	logger, err := telemetry.NewLogger(telemetry.DefaultLoggingConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ctx = logger.WithContext(ctx)
//
// Retrieve the logger from a context anywhere below:
//
//	log := telemetry.FromContext(ctx).NewComponentLogger("reconciler")
//	log.Info("reconciliation started")
package telemetry
