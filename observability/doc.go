// Package observability wires OpenTelemetry tracing and metrics.
//
//	shutdown, err := observability.Init(ctx, cfg.Telemetry)
//	defer shutdown(context.Background())
//
// Redis commands are traced and counted by the hook installed in the redis
// package; it uses the global providers, so nothing is exported until Init
// (or an equivalent provider setup) has run.
//
//	metrics, _ := observability.NewCommandMetrics(observability.Meter(observability.InstrumentationName))
//	metrics.RecordCommand(ctx, "get", "", 2*time.Millisecond)
package observability
