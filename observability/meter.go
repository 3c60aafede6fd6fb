package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/redisfacade/logger"
)

// InitMeter installs a global meter provider exporting over OTLP/HTTP.
func InitMeter(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.MetricInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.MetricInterval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.MetricInterval.String(),
	))
	return mp, nil
}

// Init starts tracing and metrics when cfg.Enabled is set. The returned
// shutdown function is never nil.
func Init(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	tp, err := InitTracer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	mp, err := InitMeter(ctx, cfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	return func(ctx context.Context) error {
		terr := tp.Shutdown(ctx)
		merr := mp.Shutdown(ctx)
		if terr != nil {
			return terr
		}
		return merr
	}, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric names recorded for store commands.
const (
	MetricCommandTotal    = "redis.command.total"
	MetricCommandDuration = "redis.command.duration"
	MetricCommandErrors   = "redis.command.errors"
)

// CommandMetrics holds the instruments for store commands.
type CommandMetrics struct {
	total    metric.Int64Counter
	duration metric.Float64Histogram
	errors   metric.Int64Counter
}

// NewCommandMetrics creates command instruments on meter.
func NewCommandMetrics(meter metric.Meter) (*CommandMetrics, error) {
	total, err := meter.Int64Counter(MetricCommandTotal,
		metric.WithDescription("Total number of redis commands"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricCommandTotal, err)
	}

	duration, err := meter.Float64Histogram(MetricCommandDuration,
		metric.WithDescription("Duration of redis commands in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricCommandDuration, err)
	}

	errs, err := meter.Int64Counter(MetricCommandErrors,
		metric.WithDescription("Failed redis commands by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricCommandErrors, err)
	}

	return &CommandMetrics{total: total, duration: duration, errors: errs}, nil
}

// RecordCommand records one command or pipeline. errorCode is empty on success.
func (m *CommandMetrics) RecordCommand(ctx context.Context, command, errorCode string, d time.Duration) {
	status := "ok"
	if errorCode != "" {
		status = "error"
	}
	m.total.Add(ctx, 1, metric.WithAttributes(
		attribute.String("command", command),
		attribute.String("status", status),
	))
	m.duration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("command", command),
	))
	if errorCode != "" {
		m.errors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("command", command),
			attribute.String("code", errorCode),
		))
	}
}

// RecordSpanError records err on span and sets its status.
func RecordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
