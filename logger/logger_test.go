// SPDX-License-Identifier: MIT

package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevels(t *testing.T) {
	for _, tc := range []struct {
		name          string
		expectedLevel zapcore.Level
	}{
		{name: "Info", expectedLevel: zapcore.InfoLevel},
		{name: "Debug", expectedLevel: zapcore.DebugLevel},
		{name: "Warn", expectedLevel: zapcore.WarnLevel},
		{name: "Error", expectedLevel: zapcore.ErrorLevel},
	} {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			dut := ZapLogger{zap.New(core)}
			const msg = "ABC"
			switch tc.name {
			case "Info":
				dut.Info(msg)
			case "Debug":
				dut.Debug(msg)
			case "Warn":
				dut.Warn(msg)
			case "Error":
				dut.Error(msg)
			}
			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			require.Equal(t, msg, entry.Message)
			require.Equal(t, tc.expectedLevel, entry.Level)
			require.Empty(t, entry.ContextMap())
		})
	}
}

func TestWithContext_AddsTraceIDs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dut := ZapLogger{zap.New(core)}

	// Without a span the fields are passed through untouched.
	dut.InfoWithContext(context.Background(), "plain", zap.Int("cells", 9))
	require.Equal(t, map[string]interface{}{"cells": int64(9)}, logs.All()[0].ContextMap())

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{0x01},
		SpanID:  trace.SpanID{0x02},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	dut.WarnWithContext(ctx, "traced")
	fields := logs.All()[1].ContextMap()
	require.Equal(t, sc.TraceID().String(), fields["trace_id"])
	require.Equal(t, sc.SpanID().String(), fields["span_id"])
	require.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
}

func TestWithContext_KeepsCallerFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dut := ZapLogger{zap.New(core)}
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{0x03},
		SpanID:  trace.SpanID{0x04},
	}))

	// Spare capacity after the caller's fields must stay untouched.
	backing := make([]zap.Field, 3)
	fields := backing[:1]
	fields[0] = zap.Int("cells", 9)
	dut.InfoWithContext(ctx, "traced", fields...)

	require.Len(t, logs.All(), 1)
	require.Equal(t, zap.Field{}, backing[1])
	require.Equal(t, zap.Field{}, backing[2])
	require.Contains(t, logs.All()[0].ContextMap(), "trace_id")
}

func TestWith(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dut := (&ZapLogger{zap.New(core)}).With(zap.String("mode", "d8"))
	dut.Debug("x")
	require.Equal(t, "d8", logs.All()[0].ContextMap()["mode"])
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("json", "none")
	require.NoError(t, err)
	require.NotNil(t, l)

	_, err = NewLogger("json", "verbose")
	require.ErrorContains(t, err, "unknown log level")

	_, err = NewLogger("xml", "info")
	require.ErrorContains(t, err, "unknown log format")

	l, err = NewLogger("text", "debug")
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zapcore.DebugLevel))

	require.Panics(t, func() { MustNewLogger("json", "loud") })
}
