package ml

import (
	"math"
	"math/rand"
)

// Model is anything that scores one encoded feature row. The classifier
// returns a fertilizer class code, the regressor a quantity in kilograms.
type Model interface {
	Predict(row FeatureRow) float64
}

// ForestParams are the random-forest hyperparameters searched at training
// time. Exported fields for gob.
type ForestParams struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
}

// ForestClassifier predicts a class code by majority vote over its trees.
type ForestClassifier struct {
	Params ForestParams
	Seed   int64
	Trees  []*TreeNode
}

// ForestRegressor predicts the mean of its trees' outputs.
type ForestRegressor struct {
	Params ForestParams
	Seed   int64
	Trees  []*TreeNode
}

func fitForest(x []FeatureRow, y []float64, p ForestParams, seed int64, classification bool) []*TreeNode {
	rng := rand.New(rand.NewSource(seed))
	maxFeatures := NumFeatures
	if classification {
		// sqrt(n) features per split, the usual classifier default
		maxFeatures = int(math.Sqrt(NumFeatures))
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}

	trees := make([]*TreeNode, p.NEstimators)
	n := len(x)
	for t := range trees {
		// bootstrap sample
		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		b := &treeBuilder{
			x:               x,
			y:               y,
			maxDepth:        p.MaxDepth,
			minSamplesSplit: p.MinSamplesSplit,
			minSamplesLeaf:  p.MinSamplesLeaf,
			maxFeatures:     maxFeatures,
			classification:  classification,
			rng:             rng,
		}
		trees[t] = b.build(idx, 0)
	}
	return trees
}

// FitClassifier trains a forest classifier. Seeded, so training is
// reproducible for a given dataset and parameter set.
func FitClassifier(x []FeatureRow, y []float64, p ForestParams, seed int64) *ForestClassifier {
	return &ForestClassifier{Params: p, Seed: seed, Trees: fitForest(x, y, p, seed, true)}
}

// FitRegressor trains a forest regressor.
func FitRegressor(x []FeatureRow, y []float64, p ForestParams, seed int64) *ForestRegressor {
	return &ForestRegressor{Params: p, Seed: seed, Trees: fitForest(x, y, p, seed, false)}
}

func (f *ForestClassifier) Predict(row FeatureRow) float64 {
	votes := map[float64]int{}
	for _, t := range f.Trees {
		votes[t.predict(row)]++
	}
	best, bestN := 0.0, -1
	for cls, n := range votes {
		if n > bestN || (n == bestN && cls < best) {
			best, bestN = cls, n
		}
	}
	return best
}

func (f *ForestRegressor) Predict(row FeatureRow) float64 {
	sum := 0.0
	for _, t := range f.Trees {
		sum += t.predict(row)
	}
	return sum / float64(len(f.Trees))
}
