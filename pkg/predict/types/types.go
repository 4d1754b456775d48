package types

import "github.com/rotisserie/eris"

// RawMeasurement is one form submission, untouched: every field arrives as
// text. Field names follow the original form (N/P/K for the nutrients).
type RawMeasurement struct {
	Temperature   string `json:"temperature" form:"temperature"`
	Humidity      string `json:"humidity" form:"humidity"`
	Moisture      string `json:"moisture" form:"moisture"`
	SoilType      string `json:"soil_type" form:"soil_type"`
	CropType      string `json:"crop_type" form:"crop_type"`
	Nitrogen      string `json:"N" form:"N"`
	CropStage     string `json:"crop_stage" form:"crop_stage"`
	Acres         string `json:"acres" form:"acres"`
	PH            string `json:"ph" form:"ph"`
	OrganicMatter string `json:"organic_matter" form:"organic_matter"`
	Rainfall      string `json:"rainfall" form:"rainfall"`
	Season        string `json:"season" form:"season"`
	Potassium     string `json:"K" form:"K"`
	Phosphorous   string `json:"P" form:"P"`
}

// Recommendation is the pipeline's output: a fertilizer name from the fixed
// enumeration (or the unknown sentinel) and a quantity in kg rounded to two
// decimals.
type Recommendation struct {
	FName     string  `json:"f_name"`
	FQuantity float64 `json:"f_quantity"`
}

// Stats reports what the pipeline has done since start: predictions served
// and, per categorical field, how often the fallback label had to stand in
// for an unseen value.
type Stats struct {
	Predictions int64            `json:"predictions"`
	Fallbacks   map[string]int64 `json:"fallbacks"`
}

// Pipeline error taxonomy. Validation and conversion failures are the user's
// to fix; the others are internal and surfaced generically.
var (
	ErrValidation      = eris.New("all fields are required")
	ErrConversion      = eris.New("invalid numeric input")
	ErrEncoderConfig   = eris.New("fallback label missing from code table")
	ErrModelInvocation = eris.New("model invocation failed")
)
