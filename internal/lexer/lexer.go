package lexer

import (
	"iter"
	"strconv"

	"omega/internal/diag"
	"omega/internal/source"
	"omega/internal/token"
	"omega/internal/trace"
)

// Result is one item of the scanner output: either a token or a lexical error.
type Result struct {
	Token token.Token
	Err   *Error
}

// Ok reports whether the result carries a token.
func (r Result) Ok() bool { return r.Err == nil }

func (r Result) String() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.Token.String()
}

// Stats counts what a scanner has produced so far.
type Stats struct {
	Lines  int
	Tokens int
	Errors int
}

// Scanner lazily turns a source buffer into tokens and lexical errors.
// Lines are scanned on demand; each line starts from a clean state, so an
// error never leaks into the next line. A Scanner is consumed once and is
// not safe for concurrent use.
type Scanner struct {
	file    *source.File
	opts    Options
	next    uint32   // следующая строка к сканированию
	pending []Result // результаты текущей строки
	head    int
	span    *trace.Span
	stats   Stats
	done    bool
}

// New creates a scanner over file.
func New(file *source.File, opts Options) *Scanner {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	return &Scanner{file: file, opts: opts, next: 1}
}

// FromString wraps text in a virtual buffer and scans it.
func FromString(text string, opts Options) *Scanner {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<string>", []byte(text))
	return New(fs.Get(id), opts)
}

// File returns the buffer being scanned.
func (s *Scanner) File() *source.File { return s.file }

// Next returns the next result; false once the buffer is exhausted.
func (s *Scanner) Next() (Result, bool) {
	for s.head >= len(s.pending) {
		if s.done {
			return Result{}, false
		}
		if !s.advance() {
			s.finish()
			return Result{}, false
		}
	}
	r := s.pending[s.head]
	s.pending[s.head] = Result{}
	s.head++
	s.deliver(r)
	return r, true
}

// All yields every remaining result in source order.
func (s *Scanner) All() iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for {
			r, ok := s.Next()
			if !ok || !yield(r) {
				return
			}
		}
	}
}

// Tokens yields (token, nil) for tokens and (zero token, err) for errors.
func (s *Scanner) Tokens() iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		for r := range s.All() {
			var ok bool
			if r.Err != nil {
				ok = yield(token.Token{}, r.Err)
			} else {
				ok = yield(r.Token, nil)
			}
			if !ok {
				return
			}
		}
	}
}

// Collect drains the scanner, splitting tokens from errors.
func (s *Scanner) Collect() ([]token.Token, []*Error) {
	var (
		toks []token.Token
		errs []*Error
	)
	for r := range s.All() {
		if r.Err != nil {
			errs = append(errs, r.Err)
			continue
		}
		toks = append(toks, r.Token)
	}
	return toks, errs
}

// Stats returns the counters accumulated so far.
func (s *Scanner) Stats() Stats { return s.stats }

// Done reports whether the scanner has been exhausted.
func (s *Scanner) Done() bool { return s.done }

// advance scans the next line into pending; false when no lines remain.
func (s *Scanner) advance() bool {
	if s.span == nil {
		s.span = trace.Begin(s.opts.Tracer, trace.ScopePass, "scan", s.opts.TraceParent)
		s.span.WithExtra("file", s.file.Name)
	}
	if int(s.next) > s.file.LineCount() {
		return false
	}
	num := s.next
	s.next++

	ln := line{
		text: s.file.GetLine(num),
		num:  num,
		file: s.file.ID,
		base: s.file.LineStart(num),
	}
	s.pending = ln.scan(s.pending[:0])
	s.head = 0
	s.stats.Lines++

	if s.opts.Tracer.Enabled() {
		s.span.Point(trace.ScopeLine, "line", strconv.FormatUint(uint64(num), 10), map[string]string{
			"results": strconv.Itoa(len(s.pending)),
		})
	}
	return true
}

func (s *Scanner) deliver(r Result) {
	if r.Err != nil {
		s.stats.Errors++
		if s.opts.Reporter != nil {
			diag.Emit(s.opts.Reporter, r.Err.Diagnostic())
		}
	} else {
		s.stats.Tokens++
	}
	if s.opts.Tracer.Level().ShouldEmit(trace.ScopeToken) {
		name := "token"
		if r.Err != nil {
			name = "error"
		}
		s.span.Point(trace.ScopeToken, name, r.String(), nil)
	}
}

func (s *Scanner) finish() {
	s.done = true
	s.pending = nil
	s.head = 0
	s.span.WithExtra("lines", strconv.Itoa(s.stats.Lines)).
		WithExtra("tokens", strconv.Itoa(s.stats.Tokens)).
		WithExtra("errors", strconv.Itoa(s.stats.Errors))
	s.span.End("")
}

// scan runs the machine over the whole line, appending to out.
func (ln *line) scan(out []Result) []Result {
	cur := NewCursor(ln.text)
	var st scanState = noContext{}
	for !cur.EOL() {
		at := cur.Mark()
		c, size := cur.Peek()
		cur.Bump()

		var rs []Result
		st, rs = ln.step(st, at, c, size)
		out = append(out, rs...)
	}
	return append(out, ln.end(st, cur.Mark())...)
}
