package ml

import (
	"sort"

	"github.com/rotisserie/eris"
)

// LabelEncoder maps text labels to small integer codes and back. Codes are
// assigned by sorted label order at fit time and never change afterwards.
// Fields are exported for gob.
type LabelEncoder struct {
	Classes []string
	Codes   map[string]int
}

// FitLabels builds an encoder over the unique labels seen in values.
func FitLabels(values []string) *LabelEncoder {
	seen := map[string]bool{}
	for _, v := range values {
		seen[v] = true
	}
	classes := make([]string, 0, len(seen))
	for v := range seen {
		classes = append(classes, v)
	}
	sort.Strings(classes)

	codes := make(map[string]int, len(classes))
	for i, c := range classes {
		codes[c] = i
	}
	return &LabelEncoder{Classes: classes, Codes: codes}
}

// Transform returns the code for label, or ok=false if the label was not
// seen at fit time. It never allocates a new code.
func (e *LabelEncoder) Transform(label string) (int, bool) {
	code, ok := e.Codes[label]
	return code, ok
}

// Inverse returns the label for code.
func (e *LabelEncoder) Inverse(code int) (string, bool) {
	if code < 0 || code >= len(e.Classes) {
		return "", false
	}
	return e.Classes[code], true
}

// EncoderSet holds one LabelEncoder per categorical field. Built once at
// training time, read-only at serving time.
type EncoderSet struct {
	Fields map[string]*LabelEncoder
}

// FitEncoders builds an EncoderSet from per-field label columns. The fallback
// label for each field is always folded in, so the serving-time fallback
// substitution can never land outside the table.
func FitEncoders(columns map[string][]string) *EncoderSet {
	set := &EncoderSet{Fields: make(map[string]*LabelEncoder, len(columns))}
	for field, labels := range columns {
		if fb, ok := FallbackLabels[field]; ok {
			labels = append(append([]string{}, labels...), fb)
		}
		set.Fields[field] = FitLabels(labels)
	}
	return set
}

// Encoder returns the encoder for field.
func (s *EncoderSet) Encoder(field string) (*LabelEncoder, bool) {
	e, ok := s.Fields[field]
	return e, ok
}

// Validate checks that every categorical field has an encoder and that each
// field's fallback label is encodable. A failure here means the artifact was
// built wrong and the process should not serve with it.
func (s *EncoderSet) Validate() error {
	for _, field := range CategoricalFields {
		e, ok := s.Fields[field]
		if ok {
			ok = len(e.Classes) > 0
		}
		if !ok {
			return eris.Errorf("encoder set: missing encoder for %q", field)
		}
		if _, found := e.Transform(FallbackLabels[field]); !found {
			return eris.Errorf("encoder set: fallback label %q not encodable for %q", FallbackLabels[field], field)
		}
	}
	return nil
}
