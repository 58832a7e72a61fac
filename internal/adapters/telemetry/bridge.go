package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/oaspect/oaspect/internal/core/ports"
)

// LogBridge implements sdktrace.SpanProcessor and forwards completed spans to
// the application logger.
type LogBridge struct {
	logger ports.Logger
}

// NewLogBridge returns a bridge writing span completions to logger.
func NewLogBridge(logger ports.Logger) *LogBridge {
	return &LogBridge{logger: logger}
}

// OnStart is called when a span starts.
func (b *LogBridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the completed span with its duration; failed spans are logged as
// errors.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil {
		return
	}
	if !s.SpanContext().IsValid() {
		return
	}

	duration := s.EndTime().Sub(s.StartTime())
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "operation failed"
		}
		b.logger.Error(errors.New(s.Name() + ": " + desc))
		return
	}
	b.logger.Info(fmt.Sprintf("%s completed in %s", s.Name(), duration.Round(time.Millisecond)))
}

// ForceFlush does nothing; the bridge is synchronous.
func (b *LogBridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing; the bridge holds no resources.
func (b *LogBridge) Shutdown(_ context.Context) error {
	return nil
}

var _ sdktrace.SpanProcessor = (*LogBridge)(nil)
