package fuzztests

import (
	"slices"
	"testing"

	"omega/internal/diag"
	"omega/internal/lexer"
	"omega/internal/source"
	"omega/internal/testkit"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.om", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		reporter := diag.BagReporter{Bag: bag}
		toks, errs := lexer.New(file, lexer.Options{Reporter: reporter}).Collect()

		if err := testkit.CheckTokenInvariants(file, toks); err != nil {
			t.Fatalf("invariants: %v\ninput: %q", err, input)
		}
		if len(errs) == 0 {
			if err := testkit.CheckCoverage(file, toks); err != nil {
				t.Fatalf("coverage: %v\ninput: %q", err, input)
			}
		}
		if want := min(len(errs), 64); bag.Len() != want {
			t.Fatalf("reporter saw %d errors, scanner returned %d", bag.Len(), len(errs))
		}

		again, againErrs := lexer.New(file, lexer.Options{}).Collect()
		if !slices.Equal(toks, again) || len(errs) != len(againErrs) {
			t.Fatalf("scan is not deterministic for %q", input)
		}
		for i := range errs {
			if errs[i].Error() != againErrs[i].Error() {
				t.Fatalf("error %d differs: %v vs %v", i, errs[i], againErrs[i])
			}
		}
	})
}
