// Package trace is the structured event log of the scanner and its driver.
//
// Events form a tree: the driver opens a "tokenize" span per buffer
// (ScopeDriver), the scanner opens a "scan" span (ScopePass) under it and
// adds a "line" point per source line (ScopeLine) and a "token" or "error"
// point per result (ScopeToken). The Level decides how deep into that tree
// events are kept:
//
//	off, error  nothing
//	phase       driver and pass spans
//	detail      + line points
//	debug       + token and error points
//
// Sinks are StreamTracer (text or NDJSON written as it happens), RingTracer
// (last N events in memory) and MultiTracer (both). A tracer travels in a
// context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "tokenize")
//	defer span.End("")
package trace
