package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestFromContext(t *testing.T) {
	t.Run("missing logger returns nop", func(t *testing.T) {
		l := FromContext(context.Background())
		require.NotNil(t, l)
		l.Info("ignored")
	})

	t.Run("stored logger is returned", func(t *testing.T) {
		log, _ := observed()
		ctx := WithContext(context.Background(), log)
		assert.Same(t, log, FromContext(ctx))
	})
}

func TestRequestAndCalculationIDs(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetCalculationID(ctx))

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithCalculationID(ctx, "calc-9")
	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "calc-9", GetCalculationID(ctx))
}

func TestL_EnrichesEntries(t *testing.T) {
	log, logs := observed()

	ctx := WithContext(context.Background(), log)
	ctx = WithRequestID(ctx, "req-42")
	ctx = WithCalculationID(ctx, "calc-7")

	L(ctx).With(zap.String("operation", "stress_test")).Info("scenario evaluated", zap.Int("scenarios", 4))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, "calc-7", fields["calculation_id"])
	assert.Equal(t, "stress_test", fields["operation"])
	assert.Equal(t, int64(4), fields["scenarios"])
	assert.NotContains(t, fields, "trace_id")
}

func TestL_AddsTraceCorrelation(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	log, logs := observed()
	ctx, span := tp.Tracer("test").Start(WithContext(context.Background(), log), "op")
	defer span.End()

	L(ctx).Warn("liquidity stressed")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
	assert.Equal(t, span.SpanContext().TraceID().String(), GetTraceID(ctx))
}

func TestGetTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestWithLogger(t *testing.T) {
	log, logs := observed()

	WithLogger(context.Background(), log).Error("boom")
	WithLogger(context.Background(), nil).Error("dropped")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "boom", logs.All()[0].Message)
}
