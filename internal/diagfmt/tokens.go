package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"omega/internal/token"
)

var kindColors = map[token.Kind][]color.Attribute{
	token.Punctuation:   {color.FgWhite},
	token.Keyword:       {color.FgMagenta, color.Bold},
	token.Id:            {color.FgCyan},
	token.IntLiteral:    {color.FgYellow},
	token.StringLiteral: {color.FgGreen},
}

// FormatTokensPretty выводит токены в человекочитаемом формате
//
//	  1: Keyword       "var" at 1:1
func FormatTokensPretty(w io.Writer, tokens []token.Token, opts TokenOpts) error {
	var sb strings.Builder
	for i, tok := range tokens {
		kind := color.New(kindColors[tok.Kind]...)
		if opts.Color {
			kind.EnableColor()
		} else {
			kind.DisableColor()
		}
		fmt.Fprintf(&sb, "%3d: %s %q at %s\n", i+1, kind.Sprintf("%-13s", tok.Kind), tok.Lexeme, tok.Coord)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	if tokens == nil {
		tokens = []token.Token{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokens)
}
