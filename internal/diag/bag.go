package diag

import (
	"cmp"
	"math"
	"slices"

	"fortio.org/safecast"

	"omega/internal/source"
)

// Bag collects diagnostics up to a fixed limit; the rest are only counted.
type Bag struct {
	items   []Diagnostic
	max     uint16
	dropped int
}

// NewBag creates a bag holding at most max diagnostics; values above
// math.MaxUint16 are clamped, non-positive values mean "nothing fits".
func NewBag(max int) *Bag {
	limit, err := safecast.Conv[uint16](max)
	if err != nil {
		limit = 0
		if max > 0 {
			limit = math.MaxUint16
		}
	}
	return &Bag{items: make([]Diagnostic, 0, min(limit, 64)), max: limit}
}

// Add возвращает false, если лимит исчерпан и диагностика только посчитана.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 { return b.max }

// Dropped counts diagnostics rejected because the bag was full.
func (b *Bag) Dropped() int { return b.dropped }

func (b *Bag) Len() int { return len(b.items) }

// Items — внутренний срез, не модифицировать.
func (b *Bag) Items() []Diagnostic { return b.items }

// HasErrors reports any diagnostic of SevError.
func (b *Bag) HasErrors() bool { return b.atLeast(SevError) }

// HasWarnings reports any diagnostic of SevWarning or worse.
func (b *Bag) HasWarnings() bool { return b.atLeast(SevWarning) }

func (b *Bag) atLeast(sev Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

// Merge appends everything other holds, raising the limit when needed, and
// carries over its dropped count.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); total > int(b.max) {
		limit, err := safecast.Conv[uint16](total)
		if err != nil {
			limit = math.MaxUint16
		}
		b.max = limit
	}
	for _, d := range other.items {
		b.Add(d)
	}
	b.dropped += other.dropped
}

// Sort orders by file, start, end, then severity (worst first) and code, so
// output does not depend on the order diagnostics were reported in.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first diagnostic per code and primary span.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Primary}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
