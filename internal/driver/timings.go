package driver

import (
	"encoding/json"
	"fmt"

	"omega/internal/diag"
	"omega/internal/observ"
	"omega/internal/source"
)

// timingPayload is the JSON note of an OBS6001 diagnostic.
type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
	Cached  bool                 `json:"cached,omitempty"`
}

// timingDiagnostic wraps the phase report of one buffer into an info entry.
func timingDiagnostic(file *source.File, report observ.Report, cached bool) (diag.Diagnostic, error) {
	data, err := json.Marshal(timingPayload{
		Kind:    "tokenize",
		Path:    file.Name,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
		Cached:  cached,
	})
	if err != nil {
		return diag.Diagnostic{}, fmt.Errorf("encode timings: %w", err)
	}
	at := source.Span{File: file.ID}
	msg := fmt.Sprintf("timings (tokenize): total %.2f ms: %s", report.TotalMS, file.Name)
	return diag.New(diag.SevInfo, diag.ObsTimings, at, msg).WithNote(at, string(data)), nil
}

// forceAdd stores d even in a full bag; Merge grows the limit instead of
// counting d as dropped.
func forceAdd(bag *diag.Bag, d diag.Diagnostic) {
	extra := diag.NewBag(1)
	extra.Add(d)
	bag.Merge(extra)
}
