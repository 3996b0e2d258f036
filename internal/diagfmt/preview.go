package diagfmt

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"omega/internal/diag"
	"omega/internal/source"
)

// fixPreview holds the whole lines an edit touches, before and after it is
// applied.
type fixPreview struct {
	before []string
	after  []string
}

func previewEdit(fs *source.FileSet, edit diag.FixEdit) (fixPreview, error) {
	file, ok := fs.Lookup(edit.Span.File)
	if !ok {
		return fixPreview{}, fmt.Errorf("preview: unknown file %d", edit.Span.File)
	}
	sp := edit.Span
	if sp.Start > sp.End || int(sp.End) > len(file.Content) {
		return fixPreview{}, fmt.Errorf("preview: span %s out of range", sp)
	}

	block := source.Span{
		File:  file.ID,
		Start: file.LineStart(file.Position(sp.Start).Line),
		End:   lineEnd(file, file.Position(sp.End).Line),
	}
	before := file.Text(block)
	head := sp.Start - block.Start
	after := before[:head] + edit.NewText + before[head+sp.Len():]

	return fixPreview{before: previewLines(before), after: previewLines(after)}, nil
}

// lineEnd is the offset of the '\n' closing line, or the buffer end.
func lineEnd(f *source.File, line uint32) uint32 {
	if line >= 1 && int(line) <= len(f.LineIdx) {
		return f.LineIdx[line-1]
	}
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return end
}

func previewLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// replacedText is what an edit removes; empty for insertions.
func replacedText(fs *source.FileSet, edit diag.FixEdit) string {
	file, ok := fs.Lookup(edit.Span.File)
	if !ok {
		return ""
	}
	return file.Text(edit.Span)
}
