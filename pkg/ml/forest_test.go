package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// synthetic rows: every column carries the same signal, so a split on any
// feature separates the classes regardless of which subset a tree samples
func syntheticData() (x []FeatureRow, classes, quantities []float64) {
	for i := 0; i < 40; i++ {
		var row FeatureRow
		for j := range row {
			row[j] = float64(i)
		}
		x = append(x, row)
		if i < 20 {
			classes = append(classes, 1)
			quantities = append(quantities, 10)
		} else {
			classes = append(classes, 2)
			quantities = append(quantities, 100)
		}
	}
	return x, classes, quantities
}

func constantRow(v float64) FeatureRow {
	var row FeatureRow
	for j := range row {
		row[j] = v
	}
	return row
}

func TestClassifierLearnsSeparableData(t *testing.T) {
	x, y, _ := syntheticData()
	p := ForestParams{NEstimators: 20, MaxDepth: 5, MinSamplesSplit: 2, MinSamplesLeaf: 1}
	c := FitClassifier(x, y, p, 50)

	assert.Equal(t, 1.0, c.Predict(constantRow(5)))
	assert.Equal(t, 2.0, c.Predict(constantRow(35)))
	assert.GreaterOrEqual(t, Accuracy(c, x, y), 0.95)
}

func TestRegressorLearnsStepFunction(t *testing.T) {
	x, _, y := syntheticData()
	p := ForestParams{NEstimators: 20, MaxDepth: 5, MinSamplesSplit: 2, MinSamplesLeaf: 1}
	r := FitRegressor(x, y, p, 0)

	assert.InDelta(t, 10, r.Predict(constantRow(5)), 10)
	assert.InDelta(t, 100, r.Predict(constantRow(35)), 10)
}

func TestTrainingIsDeterministicForSeed(t *testing.T) {
	x, y, _ := syntheticData()
	p := ForestParams{NEstimators: 10, MaxDepth: 4, MinSamplesSplit: 2, MinSamplesLeaf: 1}

	a := FitClassifier(x, y, p, 42)
	b := FitClassifier(x, y, p, 42)

	for i := 0; i < 40; i++ {
		assert.Equal(t, a.Predict(constantRow(float64(i))), b.Predict(constantRow(float64(i))))
	}
}

func TestTrainTestSplitSizes(t *testing.T) {
	x, y, _ := syntheticData()
	xTr, xTe, yTr, yTe := TrainTestSplit(x, y, 0.25, 50)

	require.Len(t, xTe, 10)
	require.Len(t, xTr, 30)
	assert.Len(t, yTe, 10)
	assert.Len(t, yTr, 30)

	// same seed, same split
	_, xTe2, _, _ := TrainTestSplit(x, y, 0.25, 50)
	assert.Equal(t, xTe, xTe2)
}

func TestGridSearchPicksAParamSet(t *testing.T) {
	x, y, _ := syntheticData()
	g := Grid{
		NEstimators:     []int{5, 10},
		MaxDepth:        []int{3},
		MinSamplesSplit: []int{2},
		MinSamplesLeaf:  []int{1},
	}
	c, params, score := GridSearchClassifier(x, y, g, 4, 50)
	require.NotNil(t, c)
	assert.Contains(t, []int{5, 10}, params.NEstimators)
	assert.Greater(t, score, 0.5)
}
