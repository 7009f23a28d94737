package diag

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hb-lang/hbc/internal/srcmap"
)

// Report is the canonical structured error type for hbc. Every error the
// kernel returns should be (or wrap) a *Report.
type Report struct {
	Schema  string         `json:"schema"` // always "hbc.error/v1"
	Code    string         `json:"code"`
	Phase   string         `json:"phase"`
	Message string         `json:"message"`
	Span    *srcmap.Span   `json:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

const schemaV1 = "hbc.error/v1"

// New builds a Report with the given code/phase/message.
func New(code, phase, message string) *Report {
	return &Report{Schema: schemaV1, Code: code, Phase: phase, Message: message, Data: map[string]any{}}
}

// WithSpan attaches a span and returns the same report for chaining.
func (r *Report) WithSpan(s srcmap.Span) *Report {
	r.Span = &s
	return r
}

// WithData attaches a key/value pair to the report's structured data.
func (r *Report) WithData(key string, value any) *Report {
	if r.Data == nil {
		r.Data = map[string]any{}
	}
	r.Data[key] = value
	return r
}

// ReportError wraps a Report so it satisfies error while surviving
// errors.As() unwrapping back to the structured Report.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return fmt.Sprintf("%s [%s]: %s", e.Rep.Code, e.Rep.Phase, e.Rep.Message)
}

// Wrap turns a *Report into an error.
func Wrap(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// AsReport extracts the *Report from an error chain, if present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// ToJSON renders the report deterministically.
func (r *Report) ToJSON(indent bool) (string, error) {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(r, "", "  ")
	} else {
		data, err = json.Marshal(r)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Many aggregates several reports, e.g. from TyCtxt.Merge. Its own Code is
// always AGGMany; the per-collision codes live on the individual Reports.
type Many struct {
	Code    string
	Reports []*Report
}

func (m *Many) Error() string {
	first := fmt.Sprintf("%s [%s]: %s", m.Reports[0].Code, m.Reports[0].Phase, m.Reports[0].Message)
	if len(m.Reports) == 1 {
		return first
	}
	return fmt.Sprintf("%d errors (first: %s)", len(m.Reports), first)
}

// NewMany wraps a non-empty batch of reports, returning nil if the batch is
// empty — callers use this to turn an accumulator into an error or nil.
func NewMany(reports []*Report) error {
	if len(reports) == 0 {
		return nil
	}
	return &Many{Code: AGGMany, Reports: reports}
}
