package lexer

import (
	"omega/internal/diag"
	"omega/internal/trace"
)

// Options configures a Scanner. The zero value is valid: errors are only
// returned to the caller and nothing is traced.
type Options struct {
	Reporter    diag.Reporter // может быть nil — ошибки всё равно возвращаются в Result
	Tracer      trace.Tracer  // nil means trace.Nop
	TraceParent uint64        // span the scan pass is nested under, 0 for root
}
