package source

import (
	"crypto/sha256"
	"fmt"
	"iter"
	"unicode/utf8"

	"fortio.org/safecast"
)

// FileSet owns a collection of in-memory source buffers.
type FileSet struct {
	files []File
	index map[string]FileID // name -> latest id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores a buffer, strips a leading BOM, normalizes CRLF line endings,
// computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a buffer with the same name exists.
func (fileSet *FileSet) Add(name string, content []byte, flags FileFlags) FileID {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Name:    name,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	// Всегда обновляем индекс на последнюю версию буфера
	fileSet.index[name] = id
	return id
}

// AddVirtual adds an in-memory buffer with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the buffer for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// Lookup returns the buffer for the given ID, or false when the ID is unknown.
func (fileSet *FileSet) Lookup(id FileID) (*File, bool) {
	if int(id) >= len(fileSet.files) {
		return nil, false
	}
	return &fileSet.files[id], true
}

// GetLatest returns the latest ID registered under name.
func (fileSet *FileSet) GetLatest(name string) (FileID, bool) {
	id, ok := fileSet.index[name]
	return id, ok
}

// Len is the number of buffers ever added.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fileSet.files[span.File]
	return f.Position(span.Start), f.Position(span.End)
}

// Position converts a byte offset into a line/column pair.
// Columns count characters; a truncated multi-byte rune counts as one.
func (f *File) Position(off uint32) LineCol {
	line, start := lineOf(f.LineIdx, off)
	end := min(int(off), len(f.Content))
	col, err := safecast.Conv[uint32](utf8.RuneCount(f.Content[start:end]))
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	return LineCol{Line: line, Col: col + 1}
}

// LineCount returns the number of lines. A trailing newline does not open a
// new line; an empty buffer has zero lines.
func (f *File) LineCount() int {
	if len(f.Content) == 0 {
		return 0
	}
	n := len(f.LineIdx)
	if f.Content[len(f.Content)-1] != '\n' {
		n++
	}
	return n
}

// LineStart returns the byte offset where the 1-based line begins.
func (f *File) LineStart(lineNum uint32) uint32 {
	if lineNum <= 1 || int(lineNum-2) >= len(f.LineIdx) {
		return 0
	}
	return f.LineIdx[lineNum-2] + 1
}

// GetLine возвращает строку с заданным номером (1-based) без '\n'.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 || int(lineNum) > f.LineCount() {
		return ""
	}
	start := f.LineStart(lineNum)
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	if int(lineNum-1) < len(f.LineIdx) {
		end = f.LineIdx[lineNum-1]
	}
	return string(f.Content[start:end])
}

// Lines yields every line with its 1-based number, in order.
func (f *File) Lines() iter.Seq2[uint32, string] {
	return func(yield func(uint32, string) bool) {
		n := f.LineCount()
		for i := 1; i <= n; i++ {
			num, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("line number overflow: %w", err))
			}
			if !yield(num, f.GetLine(num)) {
				return
			}
		}
	}
}
