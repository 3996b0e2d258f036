package trace

import "context"

type (
	tracerKey struct{}
	spanKey   struct{}
)

// WithTracer stores t in ctx; nil stores Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// SpanContext identifies the innermost recorded span of a context.
type SpanContext struct {
	SpanID uint64
}

// CurrentSpan returns the zero SpanContext when ctx carries no span.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx != nil {
		if sc, ok := ctx.Value(spanKey{}).(SpanContext); ok {
			return sc
		}
	}
	return SpanContext{}
}

// StartSpan opens a span under the one carried by ctx. The returned context
// carries the new span only when it is recorded, so filtered levels do not
// break the parent chain.
func StartSpan(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	sp := Begin(FromContext(ctx), scope, name, CurrentSpan(ctx).SpanID)
	if sp.ID() == 0 {
		return ctx, sp
	}
	return context.WithValue(ctx, spanKey{}, SpanContext{SpanID: sp.ID()}), sp
}
