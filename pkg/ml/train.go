package ml

import (
	"math"
	"math/rand"
)

// Grid is the hyperparameter search space.
type Grid struct {
	NEstimators     []int
	MaxDepth        []int
	MinSamplesSplit []int
	MinSamplesLeaf  []int
}

// DefaultGrid mirrors the grid the models were originally tuned over.
func DefaultGrid() Grid {
	return Grid{
		NEstimators:     []int{100, 200, 300},
		MaxDepth:        []int{10, 20, 30},
		MinSamplesSplit: []int{2, 5, 10},
		MinSamplesLeaf:  []int{1, 2, 4},
	}
}

func (g Grid) combinations() []ForestParams {
	var out []ForestParams
	for _, ne := range g.NEstimators {
		for _, md := range g.MaxDepth {
			for _, ms := range g.MinSamplesSplit {
				for _, ml := range g.MinSamplesLeaf {
					out = append(out, ForestParams{NEstimators: ne, MaxDepth: md, MinSamplesSplit: ms, MinSamplesLeaf: ml})
				}
			}
		}
	}
	return out
}

// TrainTestSplit shuffles with the given seed and holds out testSize of the
// rows.
func TrainTestSplit(x []FeatureRow, y []float64, testSize float64, seed int64) (xTrain, xTest []FeatureRow, yTrain, yTest []float64) {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(x))
	nTest := int(math.Round(testSize * float64(len(x))))
	for k, i := range perm {
		if k < nTest {
			xTest = append(xTest, x[i])
			yTest = append(yTest, y[i])
		} else {
			xTrain = append(xTrain, x[i])
			yTrain = append(yTrain, y[i])
		}
	}
	return xTrain, xTest, yTrain, yTest
}

func kfold(n, folds int, seed int64) [][]int {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)
	out := make([][]int, folds)
	for k, i := range perm {
		f := k % folds
		out[f] = append(out[f], i)
	}
	return out
}

func cvScore(x []FeatureRow, y []float64, p ForestParams, folds int, seed int64, classification bool) float64 {
	parts := kfold(len(x), folds, seed)
	total := 0.0
	for f := range parts {
		hold := map[int]bool{}
		for _, i := range parts[f] {
			hold[i] = true
		}
		var xTr, xTe []FeatureRow
		var yTr, yTe []float64
		for i := range x {
			if hold[i] {
				xTe = append(xTe, x[i])
				yTe = append(yTe, y[i])
			} else {
				xTr = append(xTr, x[i])
				yTr = append(yTr, y[i])
			}
		}
		var m Model
		if classification {
			m = FitClassifier(xTr, yTr, p, seed)
		} else {
			m = FitRegressor(xTr, yTr, p, seed)
		}
		if classification {
			total += Accuracy(m, xTe, yTe)
		} else {
			// negated so higher is better, like the accuracy branch
			total += -mse(m, xTe, yTe)
		}
	}
	return total / float64(folds)
}

// GridSearchClassifier cross-validates every parameter combination and fits
// the best one on the full training set.
func GridSearchClassifier(x []FeatureRow, y []float64, g Grid, folds int, seed int64) (*ForestClassifier, ForestParams, float64) {
	best, score := searchGrid(x, y, g, folds, seed, true)
	return FitClassifier(x, y, best, seed), best, score
}

// GridSearchRegressor is the regression counterpart, scored by negative MSE.
func GridSearchRegressor(x []FeatureRow, y []float64, g Grid, folds int, seed int64) (*ForestRegressor, ForestParams, float64) {
	best, score := searchGrid(x, y, g, folds, seed, false)
	return FitRegressor(x, y, best, seed), best, score
}

func searchGrid(x []FeatureRow, y []float64, g Grid, folds int, seed int64, classification bool) (ForestParams, float64) {
	var best ForestParams
	bestScore := math.Inf(-1)
	for _, p := range g.combinations() {
		s := cvScore(x, y, p, folds, seed, classification)
		if s > bestScore {
			best, bestScore = p, s
		}
	}
	return best, bestScore
}

// Accuracy is the fraction of rows the model classifies exactly.
func Accuracy(m Model, x []FeatureRow, y []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	hits := 0
	for i := range x {
		if m.Predict(x[i]) == y[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(x))
}

// MAE is the mean absolute error of the model over the rows.
func MAE(m Model, x []FeatureRow, y []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sum := 0.0
	for i := range x {
		sum += math.Abs(m.Predict(x[i]) - y[i])
	}
	return sum / float64(len(x))
}

func mse(m Model, x []FeatureRow, y []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sum := 0.0
	for i := range x {
		d := m.Predict(x[i]) - y[i]
		sum += d * d
	}
	return sum / float64(len(x))
}
