package driver

import (
	"context"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"omega/internal/source"
	"omega/internal/trace"
)

// TokenizeAll токенизирует буферы параллельно; каждый сканер остаётся
// однопоточным. Результаты идут в порядке ids.
func TokenizeAll(ctx context.Context, fs *source.FileSet, ids []source.FileID, opts Options) ([]*TokenizeResult, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if trace.FromContext(ctx) == trace.Nop {
		ctx = trace.WithTracer(ctx, opts.tracer())
	}
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "tokenize-all")
	span.WithExtra("files", strconv.Itoa(len(ids)))
	defer span.End("")

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*TokenizeResult, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(ids)))

	for i, id := range ids {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := Tokenize(gctx, fs, id, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
