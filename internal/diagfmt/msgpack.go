package diagfmt

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"omega/internal/diag"
	"omega/internal/source"
	"omega/internal/token"
)

// Current schema version - increment when Listing format changes
const listingSchemaVersion uint16 = 1

// Listing is the msgpack form of one scanned buffer: its tokens and the
// diagnostics produced while scanning. Spans are stored as offsets and
// rebound to a FileID on load.
type Listing struct {
	Schema      uint16
	Name        string
	Hash        [32]byte
	Tokens      []TokenRecord
	Diagnostics []DiagnosticRecord
}

type TokenRecord struct {
	Kind   uint8 // token.Kind
	Lexeme string
	Line   uint32
	Column uint32
}

type DiagnosticRecord struct {
	Severity uint8 // diag.Severity
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []NoteRecord
	Fixes    []FixRecord
}

type NoteRecord struct {
	Start, End uint32
	Msg        string
}

type FixRecord struct {
	Title string
	Edits []EditRecord
}

type EditRecord struct {
	Start, End uint32
	NewText    string
}

// NewListing snapshots a scan result.
func NewListing(file *source.File, toks []token.Token, diags []diag.Diagnostic) *Listing {
	l := &Listing{
		Schema:      listingSchemaVersion,
		Name:        file.Name,
		Hash:        file.Hash,
		Tokens:      make([]TokenRecord, len(toks)),
		Diagnostics: make([]DiagnosticRecord, len(diags)),
	}
	for i, tok := range toks {
		l.Tokens[i] = TokenRecord{
			Kind:   uint8(tok.Kind),
			Lexeme: tok.Lexeme,
			Line:   tok.Coord.Line,
			Column: tok.Coord.Column,
		}
	}
	for i, d := range diags {
		rec := DiagnosticRecord{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			rec.Notes = append(rec.Notes, NoteRecord{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		for _, f := range d.Fixes {
			fr := FixRecord{Title: f.Title}
			for _, e := range f.Edits {
				fr.Edits = append(fr.Edits, EditRecord{Start: e.Span.Start, End: e.Span.End, NewText: e.NewText})
			}
			rec.Fixes = append(rec.Fixes, fr)
		}
		l.Diagnostics[i] = rec
	}
	return l
}

// TokenList rebuilds the tokens, rejecting unknown kinds.
func (l *Listing) TokenList() ([]token.Token, error) {
	toks := make([]token.Token, len(l.Tokens))
	for i, rec := range l.Tokens {
		kind := token.Kind(rec.Kind)
		if !kind.Valid() {
			return nil, fmt.Errorf("token %d: invalid kind %d", i, rec.Kind)
		}
		toks[i] = token.Token{
			Kind:   kind,
			Lexeme: rec.Lexeme,
			Coord:  token.Coord{Line: rec.Line, Column: rec.Column},
		}
	}
	return toks, nil
}

// DiagnosticList rebuilds the diagnostics with spans bound to file.
func (l *Listing) DiagnosticList(file source.FileID) []diag.Diagnostic {
	span := func(start, end uint32) source.Span {
		return source.Span{File: file, Start: start, End: end}
	}
	out := make([]diag.Diagnostic, len(l.Diagnostics))
	for i, rec := range l.Diagnostics {
		d := diag.New(diag.Severity(rec.Severity), diag.Code(rec.Code), span(rec.Start, rec.End), rec.Message)
		for _, n := range rec.Notes {
			d = d.WithNote(span(n.Start, n.End), n.Msg)
		}
		for _, f := range rec.Fixes {
			edits := make([]diag.FixEdit, len(f.Edits))
			for j, e := range f.Edits {
				edits[j] = diag.FixEdit{Span: span(e.Start, e.End), NewText: e.NewText}
			}
			d = d.WithFix(f.Title, edits...)
		}
		out[i] = d
	}
	return out
}

// EncodeListing writes l as msgpack.
func EncodeListing(w io.Writer, l *Listing) error {
	return msgpack.NewEncoder(w).Encode(l)
}

// DecodeListing reads a listing written by EncodeListing.
func DecodeListing(r io.Reader) (*Listing, error) {
	var l Listing
	if err := msgpack.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	if l.Schema != listingSchemaVersion {
		return nil, fmt.Errorf("listing schema %d, expected %d", l.Schema, listingSchemaVersion)
	}
	return &l, nil
}
