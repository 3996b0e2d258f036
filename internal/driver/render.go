package driver

import (
	"fmt"
	"io"

	"fortio.org/safecast"

	"omega/internal/config"
	"omega/internal/diagfmt"
	"omega/internal/source"
)

// ListingFormat selects how Render prints the token list.
type ListingFormat uint8

const (
	ListingPretty ListingFormat = iota
	ListingJSON
)

// ParseListingFormat accepts the [render].tokens values.
func ParseListingFormat(s string) (ListingFormat, error) {
	switch s {
	case "", "pretty":
		return ListingPretty, nil
	case "json":
		return ListingJSON, nil
	}
	return 0, fmt.Errorf("invalid listing format %q (expected: pretty|json)", s)
}

// RenderOptions groups everything Render needs to print one result.
type RenderOptions struct {
	Listing ListingFormat
	Tokens  diagfmt.TokenOpts
	Pretty  diagfmt.PrettyOpts
}

// RenderOptionsFromConfig maps the [render] section.
func RenderOptionsFromConfig(cfg config.Config) (RenderOptions, error) {
	listing, err := ParseListingFormat(cfg.Render.Tokens)
	if err != nil {
		return RenderOptions{}, fmt.Errorf("render tokens: %w", err)
	}
	ctxLines, err := safecast.Conv[uint8](cfg.Render.Context)
	if err != nil {
		return RenderOptions{}, fmt.Errorf("render context: %w", err)
	}
	return RenderOptions{
		Listing: listing,
		Tokens:  diagfmt.TokenOpts{Color: cfg.Render.Color},
		Pretty: diagfmt.PrettyOpts{
			Color:     cfg.Render.Color,
			Context:   ctxLines,
			TabWidth:  cfg.Render.TabWidth,
			ShowNotes: true,
			ShowFixes: true,
		},
	}, nil
}

// Render prints the token listing of res followed by its diagnostics.
func Render(w io.Writer, fs *source.FileSet, res *TokenizeResult, opts RenderOptions) error {
	var err error
	switch opts.Listing {
	case ListingJSON:
		err = diagfmt.FormatTokensJSON(w, res.Tokens)
	default:
		err = diagfmt.FormatTokensPretty(w, res.Tokens, opts.Tokens)
	}
	if err != nil {
		return fmt.Errorf("render %s: tokens: %w", res.File.Name, err)
	}
	if res.Bag.Len() == 0 {
		return nil
	}
	if err := diagfmt.Pretty(w, res.Bag, fs, opts.Pretty); err != nil {
		return fmt.Errorf("render %s: diagnostics: %w", res.File.Name, err)
	}
	return nil
}
