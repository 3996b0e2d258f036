package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Span is a half-open byte range [Start, End) of one buffer. Scanner spans
// never cross a line break.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool { return s.Start >= s.End }

func (s Span) Len() uint32 {
	if s.Empty() {
		return 0
	}
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover extends s to include other; spans of another buffer are ignored.
func (s Span) Cover(other Span) Span {
	if s.File == other.File {
		s.Start, s.End = min(s.Start, other.Start), max(s.End, other.End)
	}
	return s
}

// Contains reports whether other lies fully inside s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

// Text returns the bytes of f covered by s, clamped to the buffer.
func (f *File) Text(s Span) string {
	if s.File != f.ID {
		return ""
	}
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	start, end := min(s.Start, n), min(s.End, n)
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}
