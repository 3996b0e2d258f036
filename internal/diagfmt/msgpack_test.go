package diagfmt

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"omega/internal/lexer"
	"omega/internal/token"
)

func TestListingRoundTrip(t *testing.T) {
	fs, bag := scanInto(t, "rt.om", "while a != b {\n  a = a - 1 !\n}")
	file := fs.Get(0)
	toks, _ := lexer.New(file, lexer.Options{}).Collect()

	var buf bytes.Buffer
	if err := EncodeListing(&buf, NewListing(file, toks, bag.Items())); err != nil {
		t.Fatalf("encode: %v", err)
	}
	l, err := DecodeListing(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if l.Name != "rt.om" || l.Hash != file.Hash {
		t.Errorf("header: %q %x", l.Name, l.Hash)
	}

	gotToks, err := l.TokenList()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(gotToks, toks) {
		t.Errorf("tokens differ:\n%v\n%v", gotToks, toks)
	}

	gotDiags := l.DiagnosticList(file.ID)
	want := bag.Items()
	if len(gotDiags) != len(want) || len(want) != 1 {
		t.Fatalf("diagnostics: %v vs %v", gotDiags, want)
	}
	g, w := gotDiags[0], want[0]
	if g.Code != w.Code || g.Severity != w.Severity || g.Message != w.Message || g.Primary != w.Primary {
		t.Errorf("diagnostic differs: %+v vs %+v", g, w)
	}
	if len(g.Fixes) != 1 || g.Fixes[0].Edits[0] != w.Fixes[0].Edits[0] {
		t.Errorf("fixes differ: %+v vs %+v", g.Fixes, w.Fixes)
	}
}

func TestDecodeListingRejectsGarbage(t *testing.T) {
	if _, err := DecodeListing(strings.NewReader("\xc1")); err == nil {
		t.Fatal("expected decode error")
	}

	var buf bytes.Buffer
	if err := EncodeListing(&buf, &Listing{Schema: 99}); err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeListing(&buf); err == nil || !strings.Contains(err.Error(), "schema") {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestTokenListRejectsUnknownKind(t *testing.T) {
	l := &Listing{Tokens: []TokenRecord{{Kind: uint8(token.StringLiteral) + 1, Lexeme: "x"}}}
	if _, err := l.TokenList(); err == nil {
		t.Fatal("expected invalid kind error")
	}
}
