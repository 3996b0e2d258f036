package source

type (
	// FileID uniquely identifies a source buffer within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source buffer.
	FileFlags uint8
)

const (
	// FileVirtual marks buffers handed over from memory (tests, editors, stdin wrappers).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures content and line metadata for a single source buffer.
type File struct {
	ID      FileID
	Name    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source buffer.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, counted in characters
}
