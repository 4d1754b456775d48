package serviceImp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fertiq/entities"
	"fertiq/pkg/ml"
	"fertiq/pkg/predict/types"
)

type stubModel struct {
	out  float64
	rows []ml.FeatureRow
}

func (m *stubModel) Predict(row ml.FeatureRow) float64 {
	m.rows = append(m.rows, row)
	return m.out
}

type panicModel struct{}

func (panicModel) Predict(ml.FeatureRow) float64 { panic("corrupt artifact") }

type stubRepo struct {
	records    []entities.FQData
	failAppend bool
}

func (r *stubRepo) Append(p *entities.FQData) error {
	if r.failAppend {
		return errors.New("disk full")
	}
	r.records = append(r.records, *p)
	return nil
}
func (r *stubRepo) Recent(int) ([]entities.FQData, error) { return r.records, nil }
func (r *stubRepo) All() ([]entities.FQData, error)       { return r.records, nil }
func (r *stubRepo) Count() (int64, error)                 { return int64(len(r.records)), nil }

func testEncoders() *ml.EncoderSet {
	return ml.FitEncoders(map[string][]string{
		"soil_type":  {"Loamy", "Sandy", "Clayey"},
		"crop_type":  {"Wheat", "Maize"},
		"crop_stage": {"Harvest", "Sowing"},
		"season":     {"Summer", "Winter"},
	})
}

func sample() types.RawMeasurement {
	return types.RawMeasurement{
		Temperature:   "30.0",
		Humidity:      "65.0",
		Moisture:      "15.0",
		SoilType:      "Loamy",
		CropType:      "Wheat",
		Nitrogen:      "50.0",
		CropStage:     "Harvest",
		Acres:         "2.5",
		PH:            "6.8",
		OrganicMatter: "3.0",
		Rainfall:      "100.0",
		Season:        "Summer",
		Potassium:     "30.0",
		Phosphorous:   "20.0",
	}
}

func TestPredictDelivers(t *testing.T) {
	classifier := &stubModel{out: 1}
	regressor := &stubModel{out: 42.5}
	repo := &stubRepo{}
	svc := New(classifier, regressor, testEncoders(), repo, zap.NewNop())

	rec, err := svc.Predict(context.Background(), sample())
	require.NoError(t, err)
	assert.Equal(t, "Urea", rec.FName)
	assert.Equal(t, 42.5, rec.FQuantity)

	require.Len(t, repo.records, 1)
	got := repo.records[0]
	assert.Equal(t, 30.0, got.Temperature)
	assert.Equal(t, 20.0, got.Phosphorous)
	assert.Equal(t, "Urea", got.FName)
	assert.Equal(t, 42.5, got.FQuantity)

	assert.Equal(t, int64(1), svc.Stats().Predictions)
}

func TestPredictMissingFieldRejects(t *testing.T) {
	repo := &stubRepo{}
	svc := New(&stubModel{out: 1}, &stubModel{out: 1}, testEncoders(), repo, zap.NewNop())

	in := sample()
	in.Humidity = "   "
	_, err := svc.Predict(context.Background(), in)
	assert.ErrorIs(t, err, types.ErrValidation)
	assert.Empty(t, repo.records, "nothing persisted on validation failure")
}

func TestPredictNonNumericRejects(t *testing.T) {
	repo := &stubRepo{}
	svc := New(&stubModel{out: 1}, &stubModel{out: 1}, testEncoders(), repo, zap.NewNop())

	in := sample()
	in.Acres = "two and a half"
	_, err := svc.Predict(context.Background(), in)
	assert.ErrorIs(t, err, types.ErrConversion)
	assert.Empty(t, repo.records)
}

func TestPredictFeatureRowOrder(t *testing.T) {
	classifier := &stubModel{out: 2}
	regressor := &stubModel{out: 10}
	svc := New(classifier, regressor, testEncoders(), &stubRepo{}, zap.NewNop())

	_, err := svc.Predict(context.Background(), sample())
	require.NoError(t, err)

	// sorted-label codes: Loamy=1, Wheat=1, Harvest=0, Summer=0
	want := ml.FeatureRow{30, 65, 15, 1, 1, 50, 0, 2.5, 6.8, 3, 100, 0, 30, 20}
	require.Len(t, classifier.rows, 1)
	require.Len(t, regressor.rows, 1)
	assert.Equal(t, want, classifier.rows[0])
	assert.Equal(t, want, regressor.rows[0], "both models get the identical row")
}

func TestPredictUnseenCategoryFallsBack(t *testing.T) {
	classifier := &stubModel{out: 1}
	repo := &stubRepo{}
	svc := New(classifier, &stubModel{out: 5}, testEncoders(), repo, zap.NewNop())

	in := sample()
	in.SoilType = "Martian"
	rec, err := svc.Predict(context.Background(), in)
	require.NoError(t, err, "unseen category must never fail the request")
	assert.Equal(t, "Urea", rec.FName)

	// persisted row carries the fallback's code (Loamy=1), not a new one
	require.Len(t, repo.records, 1)
	assert.Equal(t, 1, repo.records[0].SoilType)

	st := svc.Stats()
	assert.Equal(t, int64(1), st.Fallbacks["soil_type"])
	assert.Equal(t, int64(0), st.Fallbacks["season"])
}

func TestPredictUnknownClassCodeMapsToSentinel(t *testing.T) {
	repo := &stubRepo{}
	svc := New(&stubModel{out: 9}, &stubModel{out: 1}, testEncoders(), repo, zap.NewNop())

	rec, err := svc.Predict(context.Background(), sample())
	require.NoError(t, err)
	assert.Equal(t, ml.UnknownFertilizer, rec.FName)
	require.Len(t, repo.records, 1)
	assert.Equal(t, ml.UnknownFertilizer, repo.records[0].FName)
}

func TestPredictRoundsHalfToEven(t *testing.T) {
	svc := New(&stubModel{out: 1}, &stubModel{out: 12.345}, testEncoders(), &stubRepo{}, zap.NewNop())

	rec, err := svc.Predict(context.Background(), sample())
	require.NoError(t, err)
	assert.Equal(t, 12.34, rec.FQuantity)
}

func TestPredictModelPanicIsInternalError(t *testing.T) {
	repo := &stubRepo{}
	svc := New(panicModel{}, &stubModel{out: 1}, testEncoders(), repo, zap.NewNop())

	_, err := svc.Predict(context.Background(), sample())
	assert.ErrorIs(t, err, types.ErrModelInvocation)
	assert.Empty(t, repo.records, "no partial persistence on model failure")
}

func TestPredictPersistenceIsBestEffort(t *testing.T) {
	repo := &stubRepo{failAppend: true}
	svc := New(&stubModel{out: 2}, &stubModel{out: 7.5}, testEncoders(), repo, zap.NewNop())

	rec, err := svc.Predict(context.Background(), sample())
	require.NoError(t, err, "a failed insert must not block the response")
	assert.Equal(t, "DAP", rec.FName)
	assert.Equal(t, 7.5, rec.FQuantity)
}
