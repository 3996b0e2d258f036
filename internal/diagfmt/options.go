package diagfmt

// PathMode decides how buffer names are printed.
type PathMode uint8

const (
	PathModeAuto     PathMode = iota // короткие как есть, длинные — base name
	PathModeAsIs                     // без изменений
	PathModeBasename                 // всегда base name
)

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	Color       bool
	Context     uint8 // строк контекста перед строкой с ошибкой
	TabWidth    int   // 0 — 4
	PathMode    PathMode
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool // требует ShowFixes
}

// JSONOpts configures JSON and BuildDiagnosticsOutput.
type JSONOpts struct {
	IncludePositions bool // line/col помимо байтовых смещений
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool
}

// TokenOpts configures FormatTokensPretty.
type TokenOpts struct {
	Color bool
}
