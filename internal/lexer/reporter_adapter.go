package lexer

import "omega/internal/diag"

// ReporterAdapter собирает диагностики лексера в Bag.
type ReporterAdapter struct {
	Bag   *diag.Bag
	Dedup bool // подавлять повторы с тем же кодом, спаном и текстом
}

// Reporter returns a diag.Reporter that forwards diagnostics to the adapter's bag.
func (r *ReporterAdapter) Reporter() diag.Reporter {
	var rep diag.Reporter = diag.BagReporter{Bag: r.Bag}
	if r.Dedup {
		rep = diag.NewDedupReporter(rep)
	}
	return rep
}
