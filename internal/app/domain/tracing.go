package domain

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Op is one traced service call: a span plus a logger tagged with the method.
type Op struct {
	Span   trace.Span
	Logger *zap.Logger
}

func StartOp(ctx context.Context, tracer, method string, logger *zap.Logger, attrs ...attribute.KeyValue) (context.Context, Op) {
	ctx, span := otel.Tracer(tracer).Start(ctx, method, trace.WithAttributes(attrs...))
	return ctx, Op{Span: span, Logger: logger.With(zap.String("method", method))}
}

// Fail records err on the span and wraps it with what failed.
func (o Op) Fail(err error, what string) error {
	o.Logger.Warn(what, zap.Error(err))
	o.Span.RecordError(err)
	o.Span.SetStatus(codes.Error, what)
	return fmt.Errorf("%s: %w", what, err)
}

func (o Op) Done(msg string, attrs ...attribute.KeyValue) {
	o.Span.SetAttributes(attrs...)
	o.Span.SetStatus(codes.Ok, msg)
	o.Logger.Debug(msg)
}

func (o Op) End() { o.Span.End() }
