package redis

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/redisfacade/errors"
	"github.com/kbukum/redisfacade/observability"
)

// instrumentationHook traces every command and pipeline and, when metrics are
// configured, records counts and latency. A goredis.Nil reply is a miss, not
// a failure.
type instrumentationHook struct {
	tracer  trace.Tracer
	metrics *observability.CommandMetrics
	db      int
}

var _ goredis.Hook = (*instrumentationHook)(nil)

func newInstrumentationHook(tracer trace.Tracer, metrics *observability.CommandMetrics, db int) *instrumentationHook {
	return &instrumentationHook{tracer: tracer, metrics: metrics, db: db}
}

func (h *instrumentationHook) DialHook(next goredis.DialHook) goredis.DialHook {
	return next
}

func (h *instrumentationHook) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		name := cmd.Name()
		ctx, span := h.tracer.Start(ctx, "redis."+name,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String(observability.AttrDBSystem, observability.DBSystemRedis),
				attribute.String(observability.AttrDBOperation, name),
				attribute.Int("db.redis.database_index", h.db),
			),
		)
		defer span.End()

		start := time.Now()
		err := next(ctx, cmd)
		if err == nil {
			err = cmd.Err()
		}
		h.finish(ctx, span, name, err, time.Since(start))
		return err
	}
}

func (h *instrumentationHook) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []goredis.Cmder) error {
		op := pipelineOperation(cmds)
		ctx, span := h.tracer.Start(ctx, "redis."+op,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String(observability.AttrDBSystem, observability.DBSystemRedis),
				attribute.String(observability.AttrDBOperation, op),
				attribute.String(observability.AttrDBStatement, pipelineStatement(cmds)),
				attribute.Int(observability.AttrCmdCount, len(cmds)),
				attribute.Int("db.redis.database_index", h.db),
			),
		)
		defer span.End()

		start := time.Now()
		err := next(ctx, cmds)
		if err == nil {
			err = firstCmdError(cmds)
		}
		h.finish(ctx, span, op, err, time.Since(start))
		return err
	}
}

func (h *instrumentationHook) finish(ctx context.Context, span trace.Span, command string, err error, d time.Duration) {
	var code string
	switch {
	case err == nil:
		span.SetStatus(codes.Ok, "")
	case stderrors.Is(err, goredis.Nil):
		span.SetAttributes(attribute.Bool("db.redis.nil", true))
		span.SetStatus(codes.Ok, "")
	default:
		code = string(errors.CodeOf(classify(command, err)))
		span.SetAttributes(attribute.String(observability.AttrErrorCode, code))
		observability.RecordSpanError(span, err)
	}
	if h.metrics != nil {
		h.metrics.RecordCommand(ctx, command, code, d)
	}
}

// pipelineOperation is "multi" for MULTI/EXEC blocks and "pipeline" otherwise.
func pipelineOperation(cmds []goredis.Cmder) string {
	if len(cmds) > 0 && cmds[0].Name() == "multi" {
		return "multi"
	}
	return "pipeline"
}

// pipelineStatement lists command names only; arguments may carry values.
func pipelineStatement(cmds []goredis.Cmder) string {
	names := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		names = append(names, strings.ToUpper(cmd.Name()))
	}
	return strings.Join(names, " ")
}

func firstCmdError(cmds []goredis.Cmder) error {
	for _, cmd := range cmds {
		if err := cmd.Err(); err != nil && !stderrors.Is(err, goredis.Nil) {
			return err
		}
	}
	return nil
}
