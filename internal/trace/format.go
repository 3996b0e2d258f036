package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Format is the encoding of a written event.
type Format uint8

const (
	FormatText   Format = iota // [seq] → scope name (detail) {k=v}
	FormatNDJSON               // one JSON object per line
)

// ParseFormat accepts text, ndjson or json; empty means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatText, fmt.Errorf("invalid trace format: %q (expected: text|ndjson)", s)
}

var marks = [...]string{
	KindSpanBegin: "→ ",
	KindSpanEnd:   "← ",
	KindPoint:     "• ",
}

// AppendEvent appends the encoding of ev, newline included, to dst.
func AppendEvent(dst []byte, ev Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendJSON(dst, ev)
	}
	return appendText(dst, ev)
}

func appendText(dst []byte, ev Event) []byte {
	dst = fmt.Appendf(dst, "[%6d] ", ev.Seq)
	if ev.ParentID != 0 {
		dst = append(dst, "  "...)
	}
	if int(ev.Kind) < len(marks) {
		dst = append(dst, marks[ev.Kind]...)
	}
	dst = append(dst, ev.Scope.String()...)
	dst = append(dst, ' ')
	dst = append(dst, ev.Name...)
	if ev.Detail != "" {
		dst = append(dst, " ("...)
		dst = append(dst, ev.Detail...)
		dst = append(dst, ')')
	}
	if len(ev.Extra) > 0 {
		dst = append(dst, " {"...)
		for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			dst = append(dst, k...)
			dst = append(dst, '=')
			dst = append(dst, ev.Extra[k]...)
		}
		dst = append(dst, '}')
	}
	return append(dst, '\n')
}

type wireEvent struct {
	Time     string            `json:"time,omitempty"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id,omitempty"`
	ParentID uint64            `json:"parent_id,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

func appendJSON(dst []byte, ev Event) []byte {
	w := wireEvent{
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Extra:    ev.Extra,
	}
	if !ev.Time.IsZero() {
		w.Time = ev.Time.UTC().Format(time.RFC3339Nano)
	}
	data, err := json.Marshal(w)
	if err != nil {
		// только строки и числа, сюда не попадаем
		return strconv.AppendQuote(dst, err.Error())
	}
	dst = append(dst, data...)
	return append(dst, '\n')
}
