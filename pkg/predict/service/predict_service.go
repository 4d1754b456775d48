package service

import (
	"context"

	"fertiq/pkg/predict/types"
)

// PredictService runs a raw submission through the whole pipeline:
// validate, coerce, encode, score, map, persist.
type PredictService interface {
	Predict(ctx context.Context, in types.RawMeasurement) (types.Recommendation, error)
	Stats() types.Stats
}
