package serviceImp

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fertiq/entities"
	"fertiq/pkg/ml"
	"fertiq/pkg/predict/repository"
	"fertiq/pkg/predict/service"
	"fertiq/pkg/predict/types"
)

type predictSvc struct {
	classifier ml.Model
	regressor  ml.Model
	encoders   *ml.EncoderSet
	repo       repository.PredictionRepository
	log        *zap.Logger

	served    atomic.Int64
	fallbacks map[string]*atomic.Int64
}

// New wires the pipeline with the loaded artifacts. Models and encoders are
// read-only from here on; the service is safe for concurrent use.
func New(classifier, regressor ml.Model, encoders *ml.EncoderSet, repo repository.PredictionRepository, log *zap.Logger) service.PredictService {
	fb := make(map[string]*atomic.Int64, len(ml.CategoricalFields))
	for _, f := range ml.CategoricalFields {
		fb[f] = &atomic.Int64{}
	}
	return &predictSvc{
		classifier: classifier,
		regressor:  regressor,
		encoders:   encoders,
		repo:       repo,
		log:        log,
		fallbacks:  fb,
	}
}

func (s *predictSvc) Predict(ctx context.Context, in types.RawMeasurement) (types.Recommendation, error) {
	trimmed, err := validate(in)
	if err != nil {
		return types.Recommendation{}, err
	}

	nums, err := coerce(trimmed)
	if err != nil {
		return types.Recommendation{}, err
	}

	codes, err := s.encode(trimmed)
	if err != nil {
		return types.Recommendation{}, err
	}

	row := assemble(nums, codes)

	code, qty, err := s.score(ctx, row)
	if err != nil {
		return types.Recommendation{}, err
	}

	name, known := ml.FertilizerNames[code]
	if !known {
		// codomain drift, not fatal: keep going with the sentinel
		s.log.Warn("classifier emitted unknown class code", zap.Int("code", code))
		name = ml.UnknownFertilizer
	}
	rec := types.Recommendation{FName: name, FQuantity: round2(qty)}

	// best-effort persistence: the recommendation is still delivered when
	// the insert fails
	if err := s.repo.Append(record(row, rec)); err != nil {
		s.log.Error("persist prediction", zap.Error(err))
	}

	s.served.Add(1)
	return rec, nil
}

func (s *predictSvc) Stats() types.Stats {
	out := types.Stats{Predictions: s.served.Load(), Fallbacks: map[string]int64{}}
	for f, c := range s.fallbacks {
		out.Fallbacks[f] = c.Load()
	}
	return out
}

// validate trims every field and rejects the submission if any is empty.
// Runs before any numeric parsing so missing data never reaches ParseFloat.
func validate(in types.RawMeasurement) (types.RawMeasurement, error) {
	fields := []*string{
		&in.Temperature, &in.Humidity, &in.Moisture, &in.SoilType, &in.CropType,
		&in.Nitrogen, &in.CropStage, &in.Acres, &in.PH, &in.OrganicMatter,
		&in.Rainfall, &in.Season, &in.Potassium, &in.Phosphorous,
	}
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
		if *f == "" {
			return in, types.ErrValidation
		}
	}
	return in, nil
}

// numericValues holds the ten coerced numeric fields.
type numericValues struct {
	temperature, humidity, moisture, nitrogen, acres float64
	ph, organicMatter, rainfall, potassium, phosphorous float64
}

func coerce(in types.RawMeasurement) (numericValues, error) {
	var v numericValues
	var firstErr error
	parse := func(raw, field string) float64 {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil && firstErr == nil {
			firstErr = eris.Wrapf(types.ErrConversion, "field %s: %q", field, raw)
		}
		return f
	}
	v.temperature = parse(in.Temperature, "temperature")
	v.humidity = parse(in.Humidity, "humidity")
	v.moisture = parse(in.Moisture, "moisture")
	v.nitrogen = parse(in.Nitrogen, "N")
	v.acres = parse(in.Acres, "acres")
	v.ph = parse(in.PH, "ph")
	v.organicMatter = parse(in.OrganicMatter, "organic_matter")
	v.rainfall = parse(in.Rainfall, "rainfall")
	v.potassium = parse(in.Potassium, "K")
	v.phosphorous = parse(in.Phosphorous, "P")
	return v, firstErr
}

// encode looks each categorical label up in its code table. Unseen labels are
// silently replaced by the field's fallback label; the substitution is logged
// and counted but never fails the request. A fallback label missing from its
// own table is a broken artifact and does fail, as an internal error.
func (s *predictSvc) encode(in types.RawMeasurement) (map[string]int, error) {
	labels := map[string]string{
		"soil_type":  in.SoilType,
		"crop_type":  in.CropType,
		"crop_stage": in.CropStage,
		"season":     in.Season,
	}
	codes := make(map[string]int, len(labels))
	for _, field := range ml.CategoricalFields {
		enc, ok := s.encoders.Encoder(field)
		if !ok {
			return nil, eris.Wrapf(types.ErrEncoderConfig, "no encoder for %s", field)
		}
		label := labels[field]
		code, found := enc.Transform(label)
		if !found {
			fallback := ml.FallbackLabels[field]
			code, found = enc.Transform(fallback)
			if !found {
				return nil, eris.Wrapf(types.ErrEncoderConfig, "field %s: fallback %q", field, fallback)
			}
			s.fallbacks[field].Add(1)
			s.log.Warn("unseen category, using fallback",
				zap.String("field", field),
				zap.String("value", label),
				zap.String("fallback", fallback),
			)
		}
		codes[field] = code
	}
	return codes, nil
}

// assemble builds the feature row in the fixed training column order. Pure;
// the order never depends on how the form fields arrived.
func assemble(v numericValues, codes map[string]int) ml.FeatureRow {
	var row ml.FeatureRow
	row[ml.FiTemperature] = v.temperature
	row[ml.FiHumidity] = v.humidity
	row[ml.FiMoisture] = v.moisture
	row[ml.FiSoilType] = float64(codes["soil_type"])
	row[ml.FiCropType] = float64(codes["crop_type"])
	row[ml.FiNitrogen] = v.nitrogen
	row[ml.FiCropStage] = float64(codes["crop_stage"])
	row[ml.FiAcres] = v.acres
	row[ml.FiPH] = v.ph
	row[ml.FiOrganicMatter] = v.organicMatter
	row[ml.FiRainfall] = v.rainfall
	row[ml.FiSeason] = float64(codes["season"])
	row[ml.FiPotassium] = v.potassium
	row[ml.FiPhosphorous] = v.phosphorous
	return row
}

// score invokes both models with the identical row. The calls are independent
// and run in parallel; a panic inside either model is an internal error, not
// a user error.
func (s *predictSvc) score(ctx context.Context, row ml.FeatureRow) (int, float64, error) {
	var code int
	var qty float64

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer recoverModel(&err, "classifier")
		code = int(s.classifier.Predict(row))
		return nil
	})
	g.Go(func() (err error) {
		defer recoverModel(&err, "regressor")
		qty = s.regressor.Predict(row)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Error("model invocation failed", zap.Error(err))
		return 0, 0, err
	}
	return code, qty, nil
}

func recoverModel(err *error, which string) {
	if r := recover(); r != nil {
		*err = eris.Wrapf(types.ErrModelInvocation, "%s panicked: %v", which, r)
	}
}

func record(row ml.FeatureRow, rec types.Recommendation) *entities.FQData {
	return &entities.FQData{
		Temperature:   row[ml.FiTemperature],
		Humidity:      row[ml.FiHumidity],
		Moisture:      row[ml.FiMoisture],
		SoilType:      int(row[ml.FiSoilType]),
		CropType:      int(row[ml.FiCropType]),
		Nitrogen:      row[ml.FiNitrogen],
		CropStage:     int(row[ml.FiCropStage]),
		Acres:         row[ml.FiAcres],
		PH:            row[ml.FiPH],
		OrganicMatter: row[ml.FiOrganicMatter],
		Rainfall:      row[ml.FiRainfall],
		Season:        int(row[ml.FiSeason]),
		Potassium:     row[ml.FiPotassium],
		Phosphorous:   row[ml.FiPhosphorous],
		FName:         rec.FName,
		FQuantity:     rec.FQuantity,
	}
}

// round2 rounds to two decimals, half to even.
func round2(x float64) float64 {
	return math.RoundToEven(x*100) / 100
}
