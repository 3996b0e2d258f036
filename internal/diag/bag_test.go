package diag

import (
	"testing"

	"omega/internal/source"
)

func TestBagLimitAndDropped(t *testing.T) {
	bag := NewBag(2)
	for i := range 4 {
		bag.Add(NewError(LexInvalidCharacter, source.Span{Start: uint32(i), End: uint32(i + 1)}, "x"))
	}
	if bag.Len() != 2 || bag.Dropped() != 2 {
		t.Fatalf("Len=%d Dropped=%d, want 2/2", bag.Len(), bag.Dropped())
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("errors imply warnings threshold")
	}
	if NewBag(-1).Cap() != 0 || NewBag(1<<20).Cap() != 65535 {
		t.Fatalf("bag limits must clamp")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewError(LexUnexpectedLineEnd, source.Span{File: 1, Start: 3, End: 4}, "b"))
	bag.Add(New(SevWarning, LexInfo, source.Span{File: 0, Start: 5, End: 6}, "w"))
	bag.Add(NewError(LexInvalidCharacter, source.Span{File: 0, Start: 5, End: 6}, "a"))
	bag.Add(NewError(LexInvalidCharacter, source.Span{File: 0, Start: 5, End: 6}, "a again"))

	bag.Sort()
	items := bag.Items()
	if items[0].Severity != SevError || items[0].Primary.File != 0 {
		t.Fatalf("errors must sort before warnings on the same span: %+v", items[0])
	}
	if items[len(items)-1].Primary.File != 1 {
		t.Fatalf("file 1 must sort last")
	}

	bag.Dedup()
	if bag.Len() != 3 {
		t.Fatalf("Dedup left %d items, want 3", bag.Len())
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a, b := NewBag(1), NewBag(2)
	a.Add(NewError(LexInvalidCharacter, source.Span{}, "a"))
	b.Add(NewError(LexInvalidCharacter, source.Span{Start: 1}, "b"))
	b.Add(NewError(LexInvalidCharacter, source.Span{Start: 2}, "c"))

	a.Merge(b)
	if a.Len() != 3 || a.Cap() < 3 {
		t.Fatalf("Merge: Len=%d Cap=%d", a.Len(), a.Cap())
	}
	a.Merge(nil)
}

func TestReporters(t *testing.T) {
	bag := NewBag(10)
	rep := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}

	ReportError(rep, LexInvalidCharacter, sp, "boom").
		WithNote(source.Span{}, "context").
		WithFix("delete it", FixEdit{Span: sp}).
		Emit()
	ReportError(rep, LexInvalidCharacter, sp, "boom").Emit()
	ReportWarning(rep, LexInfo, sp, "careful").Emit()
	ReportInfo(rep, LexInfo, sp, "fyi").Emit()

	if bag.Len() != 3 {
		t.Fatalf("expected 3 unique diagnostics, got %d", bag.Len())
	}
	first := bag.Items()[0]
	if len(first.Notes) != 1 || len(first.Fixes) != 1 || first.Fixes[0].Title != "delete it" {
		t.Fatalf("builder lost metadata: %+v", first)
	}

	b := ReportError(BagReporter{Bag: bag}, LexInfo, sp, "once")
	b.Emit()
	b.Emit()
	if bag.Len() != 4 {
		t.Fatalf("Emit must be idempotent, got %d items", bag.Len())
	}

	var nilBuilder *ReportBuilder
	nilBuilder.WithNote(sp, "x").Emit()
	Emit(nil, first)
	Emit(NopReporter{}, first)
	BagReporter{}.Report(first)

	if !rep.Suppressed(first) {
		t.Fatal("reported diagnostic must be remembered")
	}
	var seen []string
	ReportWarning(ReporterFunc(func(d Diagnostic) { seen = append(seen, d.Message) }), LexInfo, sp, "func").Emit()
	if len(seen) != 1 || seen[0] != "func" {
		t.Fatalf("ReporterFunc got %v", seen)
	}
}

func TestWithNoteDoesNotAlias(t *testing.T) {
	base := NewError(LexInvalidCharacter, source.Span{}, "x").WithNote(source.Span{}, "a")
	one := base.WithNote(source.Span{Start: 1}, "b")
	two := base.WithNote(source.Span{Start: 2}, "c")
	if len(base.Notes) != 1 || one.Notes[1].Msg != "b" || two.Notes[1].Msg != "c" {
		t.Fatalf("notes aliased: %+v %+v %+v", base.Notes, one.Notes, two.Notes)
	}
}

func TestCodeFormatting(t *testing.T) {
	if got := LexInvalidCharacter.ID(); got != "LEX1001" {
		t.Fatalf("ID() = %q", got)
	}
	if got := LexUnexpectedLineEnd.String(); got != "[LEX1002]: Unexpected line end" {
		t.Fatalf("String() = %q", got)
	}
	if got := Code(42).ID(); got != "E0000" {
		t.Fatalf("ID() = %q", got)
	}
	if got := Code(1999).Title(); got != "Unknown error" {
		t.Fatalf("Title() = %q", got)
	}
	if got := ObsTimings.ID(); got != "OBS6001" {
		t.Fatalf("ID() = %q", got)
	}
}

func TestSeverityText(t *testing.T) {
	for _, s := range []Severity{SevInfo, SevWarning, SevError} {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Severity
		if err := back.UnmarshalText(text); err != nil || back != s {
			t.Fatalf("round trip %v -> %q -> %v (%v)", s, text, back, err)
		}
	}
	var s Severity
	if err := s.UnmarshalText([]byte("FATAL")); err == nil {
		t.Fatalf("expected error")
	}
	if Severity(9).String() != "UNKNOWN" {
		t.Fatalf("unexpected name")
	}
}
