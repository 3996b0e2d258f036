// Package diag defines the diagnostic model shared by the scanner and its
// consumers.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings produced while
//     scanning Omega sources.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//   - Model fix suggestions as structured text edits.
//
// # Scope
//
// Package diag does not format or print anything. Rendering lives in
// internal/diagfmt; batching across buffers lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – numeric identifier with a stable string form such as LEX1001.
//   - Message – short, human oriented text.
//   - Primary – source.Span pointing at the offending text.
//   - Notes – optional secondary spans with extra context.
//   - Fixes – optional edits that would repair the input.
//
// # Emitting diagnostics
//
// Producers report through a Reporter. BagReporter collects into a Bag, which
// supports sorting, deduplication and merging; DedupReporter drops repeats
// before they reach the next reporter. ReportBuilder chains notes and fixes
// before a single Emit.
package diag
