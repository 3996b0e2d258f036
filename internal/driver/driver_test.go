package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"omega/internal/config"
	"omega/internal/diag"
	"omega/internal/source"
	"omega/internal/trace"
)

func newFileSet(t *testing.T, sources ...string) (*source.FileSet, []source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	ids := make([]source.FileID, len(sources))
	for i, src := range sources {
		ids[i] = fs.AddVirtual(fmt.Sprintf("buf%d.om", i), []byte(src))
	}
	return fs, ids
}

func TestTokenize(t *testing.T) {
	fs, ids := newFileSet(t, "var x = 1\nprint x @\n")
	res, err := Tokenize(context.Background(), fs, ids[0], Options{MaxDiagnostics: 10})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(res.Tokens) != 6 {
		t.Fatalf("expected 6 tokens, got %v", res.Tokens)
	}
	if res.Bag.Len() != 1 || res.Bag.Items()[0].Code != diag.LexInvalidCharacter {
		t.Fatalf("diagnostics: %v", res.Bag.Items())
	}
	if res.Stats.Lines != 2 || res.Stats.Errors != 1 || res.Cached {
		t.Errorf("stats: %+v cached=%v", res.Stats, res.Cached)
	}
	if len(res.Timing.Phases) != 1 || res.Timing.Phases[0].Name != "scan" {
		t.Errorf("timing: %+v", res.Timing)
	}
}

func TestTokenizeUnknownFile(t *testing.T) {
	fs, _ := newFileSet(t)
	if _, err := Tokenize(context.Background(), fs, 7, Options{}); err == nil {
		t.Fatal("expected error for unknown file id")
	}
}

func TestTokenizeDiagnosticLimit(t *testing.T) {
	fs, ids := newFileSet(t, "@ # $ ? ^")
	res, err := Tokenize(context.Background(), fs, ids[0], Options{MaxDiagnostics: 2})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 2 || res.Bag.Dropped() != 3 {
		t.Fatalf("expected 2 kept and 3 dropped, got %d/%d", res.Bag.Len(), res.Bag.Dropped())
	}
	if res.Stats.Errors != 5 {
		t.Errorf("scanner must still see every error, got %d", res.Stats.Errors)
	}
}

func TestTokenizeTimingsDiagnostic(t *testing.T) {
	fs, ids := newFileSet(t, "@")
	res, err := Tokenize(context.Background(), fs, ids[0], Options{MaxDiagnostics: 1, Timings: true})
	if err != nil {
		t.Fatal(err)
	}
	items := res.Bag.Items()
	if len(items) != 2 || res.Bag.Dropped() != 0 {
		t.Fatalf("timings entry must be kept even when the bag is full, got %v", items)
	}
	timing := items[1]
	if timing.Code != diag.ObsTimings || timing.Severity != diag.SevInfo {
		t.Fatalf("unexpected entry %+v", timing)
	}
	if len(timing.Notes) != 1 || !strings.Contains(timing.Notes[0].Msg, `"kind":"tokenize"`) {
		t.Errorf("notes: %+v", timing.Notes)
	}
}

func TestTokenizeCache(t *testing.T) {
	const src = "if a != b {\n  print \"x\" !\n}"
	fs, ids := newFileSet(t, src, src)
	cache := NewListingCache(4)
	opts := Options{MaxDiagnostics: 10, Cache: cache}

	first, err := Tokenize(context.Background(), fs, ids[0], opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Tokenize(context.Background(), fs, ids[1], opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached || !second.Cached {
		t.Fatalf("expected miss then hit, got %v %v", first.Cached, second.Cached)
	}
	if cache.Hits() != 1 || cache.Misses() != 1 || cache.Len() != 1 {
		t.Errorf("cache counters: hits=%d misses=%d len=%d", cache.Hits(), cache.Misses(), cache.Len())
	}
	if !slices.Equal(first.Tokens, second.Tokens) {
		t.Errorf("tokens differ:\n%v\n%v", first.Tokens, second.Tokens)
	}
	if first.Stats != second.Stats {
		t.Errorf("stats differ: %+v vs %+v", first.Stats, second.Stats)
	}

	a, b := first.Bag.Items(), second.Bag.Items()
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("diagnostics: %v vs %v", a, b)
	}
	if b[0].Primary.File != ids[1] || b[0].Primary.Start != a[0].Primary.Start || b[0].Message != a[0].Message {
		t.Errorf("cached diagnostic not rebound: %+v vs %+v", b[0], a[0])
	}
}

func TestTokenizeAllOrder(t *testing.T) {
	var sources []string
	for i := range 20 {
		sources = append(sources, strings.Repeat(fmt.Sprintf("x%d = %d\n", i, i), i+1))
	}
	fs, ids := newFileSet(t, sources...)

	results, err := TokenizeAll(context.Background(), fs, ids, Options{MaxDiagnostics: 4, Jobs: 3})
	if err != nil {
		t.Fatalf("TokenizeAll: %v", err)
	}
	if len(results) != len(ids) {
		t.Fatalf("expected %d results, got %d", len(ids), len(results))
	}
	for i, res := range results {
		if res.File.ID != ids[i] {
			t.Errorf("result %d belongs to file %d", i, res.File.ID)
		}
		if len(res.Tokens) != 3*(i+1) {
			t.Errorf("result %d: expected %d tokens, got %d", i, 3*(i+1), len(res.Tokens))
		}
	}
}

func TestTokenizeAllCancelled(t *testing.T) {
	fs, ids := newFileSet(t, "a", "b", "c")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := TokenizeAll(ctx, fs, ids, Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := Tokenize(ctx, fs, ids[0], Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled from Tokenize, got %v", err)
	}
}

func TestTokenizeAllEmpty(t *testing.T) {
	fs, _ := newFileSet(t)
	results, err := TokenizeAll(context.Background(), fs, nil, Options{})
	if err != nil || results != nil {
		t.Fatalf("expected nothing, got %v %v", results, err)
	}
}

func TestTraceNesting(t *testing.T) {
	ring := trace.NewRingTracer(128, trace.LevelPhase)
	fs, ids := newFileSet(t, "a", "b")
	if _, err := TokenizeAll(context.Background(), fs, ids, Options{Tracer: ring, Jobs: 1}); err != nil {
		t.Fatal(err)
	}

	spans := make(map[uint64]trace.Event)
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin {
			spans[ev.SpanID] = ev
		}
	}
	var scans int
	for _, ev := range spans {
		if ev.Name != "scan" {
			continue
		}
		scans++
		parent, ok := spans[ev.ParentID]
		if !ok || parent.Name != "tokenize" || parent.Scope != trace.ScopeDriver {
			t.Errorf("scan span must nest under tokenize, parent=%+v", parent)
		}
		root, ok := spans[parent.ParentID]
		if !ok || root.Name != "tokenize-all" {
			t.Errorf("tokenize span must nest under tokenize-all, got %+v", root)
		}
	}
	if scans != 2 {
		t.Errorf("expected 2 scan spans, got %d", scans)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg, err := config.Parse([]byte("[scan]\nmax_diagnostics = 3\njobs = 2\n[trace]\nlevel = \"phase\"\n"), "test.toml")
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	opts, err := OptionsFromConfig(cfg, &out)
	if err != nil {
		t.Fatalf("OptionsFromConfig: %v", err)
	}
	if opts.MaxDiagnostics != 3 || opts.Jobs != 2 || !opts.Dedup {
		t.Errorf("options: %+v", opts)
	}

	fs, ids := newFileSet(t, "x")
	if _, err := Tokenize(context.Background(), fs, ids[0], opts); err != nil {
		t.Fatal(err)
	}
	if err := opts.Tracer.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "driver tokenize") || !strings.Contains(out.String(), "pass scan") {
		t.Errorf("trace output:\n%s", out.String())
	}
}

func TestOptionsFromConfigTraceOff(t *testing.T) {
	opts, err := OptionsFromConfig(config.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Tracer.Enabled() {
		t.Error("default config must not trace")
	}
}

func TestPhaseObserver(t *testing.T) {
	fs, ids := newFileSet(t, "a b", "a b")
	var events []string
	opts := Options{
		MaxDiagnostics: 1,
		Cache:          NewListingCache(1),
		Observer: func(ev PhaseEvent) {
			events = append(events, ev.File+":"+ev.Name+":"+ev.Status.String())
		},
	}
	for _, id := range ids {
		if _, err := Tokenize(context.Background(), fs, id, opts); err != nil {
			t.Fatal(err)
		}
	}
	want := []string{
		"buf0.om:cache:start", "buf0.om:cache:end", "buf0.om:scan:start", "buf0.om:scan:end",
		"buf1.om:cache:start", "buf1.om:cache:end",
	}
	if !slices.Equal(events, want) {
		t.Fatalf("events:\n got %v\nwant %v", events, want)
	}
}

func TestRenderFromConfig(t *testing.T) {
	fs, ids := newFileSet(t, "x\t@")
	res, err := Tokenize(context.Background(), fs, ids[0], Options{MaxDiagnostics: 4})
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name    string
		toml    string
		want    []string
		notWant []string
	}{
		{
			name:    "defaults",
			toml:    "",
			want:    []string{`  1: Id            "x" at 1:1`, " | " + strings.Repeat(" ", 4) + "^\n"},
			notWant: []string{`"lexeme"`},
		},
		{
			name:    "tab width and json listing",
			toml:    "[render]\ntab_width = 8\ntokens = \"json\"\n",
			want:    []string{`"lexeme": "x"`, " | " + strings.Repeat(" ", 8) + "^\n", "LEX1001"},
			notWant: []string{`"x" at 1:1`},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := config.Parse([]byte(tc.toml), "render.toml")
			if err != nil {
				t.Fatal(err)
			}
			ropts, err := RenderOptionsFromConfig(cfg)
			if err != nil {
				t.Fatal(err)
			}
			var out bytes.Buffer
			if err := Render(&out, fs, res, ropts); err != nil {
				t.Fatalf("Render: %v", err)
			}
			for _, w := range tc.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output lacks %q:\n%s", w, out.String())
				}
			}
			for _, w := range tc.notWant {
				if strings.Contains(out.String(), w) {
					t.Errorf("output unexpectedly has %q:\n%s", w, out.String())
				}
			}
		})
	}
}

func TestParseListingFormat(t *testing.T) {
	if _, err := ParseListingFormat("yaml"); err == nil {
		t.Error("expected error for unknown listing format")
	}
	if f, err := ParseListingFormat("json"); err != nil || f != ListingJSON {
		t.Errorf("json: %v, %v", f, err)
	}
}
