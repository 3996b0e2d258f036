package driver

import (
	"context"
	"fmt"

	"omega/internal/diag"
	"omega/internal/lexer"
	"omega/internal/observ"
	"omega/internal/source"
	"omega/internal/token"
	"omega/internal/trace"
)

// TokenizeResult is the scan of one buffer.
type TokenizeResult struct {
	File   *source.File
	Tokens []token.Token
	Bag    *diag.Bag
	Stats  lexer.Stats
	Cached bool // результат взят из ListingCache
	Timing observ.Report
}

// Tokenize scans one buffer of fs. Lexical errors end up in the result's Bag;
// the returned error is reserved for unknown buffers, cancellation and cache
// failures.
func Tokenize(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) (*TokenizeResult, error) {
	file, ok := fs.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("tokenize: unknown file id %d", id)
	}
	if trace.FromContext(ctx) == trace.Nop {
		ctx = trace.WithTracer(ctx, opts.tracer())
	}
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "tokenize")
	span.WithExtra("file", file.Name)
	defer span.End("")

	timer := observ.NewTimer()
	obs := newPhases(file.Name, opts.Observer)
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := (&lexer.ReporterAdapter{Bag: bag, Dedup: opts.Dedup}).Reporter()
	res := &TokenizeResult{File: file, Bag: bag}

	if opts.Cache != nil {
		idx := timer.Begin("cache")
		obs.begin("cache")
		toks, diags, hit, err := opts.Cache.Get(file)
		if err != nil {
			return nil, fmt.Errorf("tokenize %s: cache: %w", file.Name, err)
		}
		timer.End(idx, fmt.Sprintf("hit=%t", hit))
		obs.end("cache")
		if hit {
			for _, d := range diags {
				diag.Emit(reporter, d)
			}
			res.Tokens = toks
			res.Cached = true
			res.Stats = lexer.Stats{Lines: file.LineCount(), Tokens: len(toks), Errors: len(diags)}
			span.WithExtra("cached", "true")
			return finish(res, timer, opts)
		}
	}

	idx := timer.Begin("scan")
	obs.begin("scan")
	sc := lexer.New(file, lexer.Options{
		Reporter:    reporter,
		Tracer:      trace.FromContext(ctx),
		TraceParent: trace.CurrentSpan(ctx).SpanID,
	})
	var diags []diag.Diagnostic
	for r := range sc.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !r.Ok() {
			if opts.Cache != nil {
				diags = append(diags, r.Err.Diagnostic())
			}
			continue
		}
		res.Tokens = append(res.Tokens, r.Token)
	}
	res.Stats = sc.Stats()
	timer.End(idx, fmt.Sprintf("%d tokens, %d errors", res.Stats.Tokens, res.Stats.Errors))
	obs.end("scan")

	if opts.Cache != nil {
		if err := opts.Cache.Put(file, res.Tokens, diags); err != nil {
			return nil, fmt.Errorf("tokenize %s: cache: %w", file.Name, err)
		}
	}
	return finish(res, timer, opts)
}

func finish(res *TokenizeResult, timer *observ.Timer, opts Options) (*TokenizeResult, error) {
	res.Timing = timer.Report()
	if opts.Timings {
		d, err := timingDiagnostic(res.File, res.Timing, res.Cached)
		if err != nil {
			return nil, err
		}
		forceAdd(res.Bag, d)
	}
	return res, nil
}
