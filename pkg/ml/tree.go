package ml

import (
	"math/rand"
	"sort"
)

// TreeNode is one node of a CART tree. Leaf nodes carry the prediction in
// Value (majority class code for classification, mean target for regression).
// Exported fields for gob.
type TreeNode struct {
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
	Value     float64
	Leaf      bool
}

func (n *TreeNode) predict(row FeatureRow) float64 {
	for !n.Leaf {
		if row[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

// treeBuilder grows one tree over a bootstrap sample.
type treeBuilder struct {
	x               []FeatureRow
	y               []float64
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
	maxFeatures     int
	classification  bool
	rng             *rand.Rand
}

func (b *treeBuilder) build(idx []int, depth int) *TreeNode {
	if depth >= b.maxDepth || len(idx) < b.minSamplesSplit || b.pure(idx) {
		return b.leaf(idx)
	}

	feat, thr, ok := b.bestSplit(idx)
	if !ok {
		return b.leaf(idx)
	}

	var left, right []int
	for _, i := range idx {
		if b.x[i][feat] <= thr {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < b.minSamplesLeaf || len(right) < b.minSamplesLeaf {
		return b.leaf(idx)
	}

	return &TreeNode{
		Feature:   feat,
		Threshold: thr,
		Left:      b.build(left, depth+1),
		Right:     b.build(right, depth+1),
	}
}

func (b *treeBuilder) pure(idx []int) bool {
	first := b.y[idx[0]]
	for _, i := range idx[1:] {
		if b.y[i] != first {
			return false
		}
	}
	return true
}

func (b *treeBuilder) leaf(idx []int) *TreeNode {
	if b.classification {
		counts := map[float64]int{}
		for _, i := range idx {
			counts[b.y[i]]++
		}
		best, bestN := 0.0, -1
		for cls, n := range counts {
			if n > bestN || (n == bestN && cls < best) {
				best, bestN = cls, n
			}
		}
		return &TreeNode{Leaf: true, Value: best}
	}
	sum := 0.0
	for _, i := range idx {
		sum += b.y[i]
	}
	return &TreeNode{Leaf: true, Value: sum / float64(len(idx))}
}

// bestSplit scans a random feature subset for the split with the largest
// impurity decrease (Gini for classification, variance for regression).
func (b *treeBuilder) bestSplit(idx []int) (feature int, threshold float64, ok bool) {
	feats := b.rng.Perm(NumFeatures)[:b.maxFeatures]

	bestScore := -1.0
	for _, f := range feats {
		order := append([]int{}, idx...)
		sort.Slice(order, func(i, j int) bool { return b.x[order[i]][f] < b.x[order[j]][f] })

		var score, thr float64
		var found bool
		if b.classification {
			score, thr, found = b.bestGiniSplit(order, f)
		} else {
			score, thr, found = b.bestVarSplit(order, f)
		}
		if found && score > bestScore {
			bestScore, feature, threshold, ok = score, f, thr, true
		}
	}
	return feature, threshold, ok
}

func (b *treeBuilder) bestGiniSplit(order []int, f int) (score, thr float64, ok bool) {
	total := map[float64]int{}
	for _, i := range order {
		total[b.y[i]]++
	}
	n := len(order)
	left := map[float64]int{}
	gini := func(counts map[float64]int, m int) float64 {
		if m == 0 {
			return 0
		}
		g := 1.0
		for _, c := range counts {
			p := float64(c) / float64(m)
			g -= p * p
		}
		return g
	}
	parent := gini(total, n)

	best := -1.0
	for k := 0; k < n-1; k++ {
		i := order[k]
		left[b.y[i]]++
		total[b.y[i]]--
		lv, rv := b.x[i][f], b.x[order[k+1]][f]
		if lv == rv {
			continue
		}
		nl := k + 1
		nr := n - nl
		if nl < b.minSamplesLeaf || nr < b.minSamplesLeaf {
			continue
		}
		gain := parent - (float64(nl)*gini(left, nl)+float64(nr)*gini(total, nr))/float64(n)
		if gain > best {
			best = gain
			thr = (lv + rv) / 2
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	return best, thr, true
}

func (b *treeBuilder) bestVarSplit(order []int, f int) (score, thr float64, ok bool) {
	n := len(order)
	var sumR, sumSqR float64
	for _, i := range order {
		sumR += b.y[i]
		sumSqR += b.y[i] * b.y[i]
	}
	variance := func(sum, sumSq float64, m int) float64 {
		if m == 0 {
			return 0
		}
		mean := sum / float64(m)
		return sumSq/float64(m) - mean*mean
	}
	parent := variance(sumR, sumSqR, n)

	var sumL, sumSqL float64
	best := -1.0
	for k := 0; k < n-1; k++ {
		i := order[k]
		v := b.y[i]
		sumL += v
		sumSqL += v * v
		sumR -= v
		sumSqR -= v * v
		lv, rv := b.x[i][f], b.x[order[k+1]][f]
		if lv == rv {
			continue
		}
		nl := k + 1
		nr := n - nl
		if nl < b.minSamplesLeaf || nr < b.minSamplesLeaf {
			continue
		}
		gain := parent - (float64(nl)*variance(sumL, sumSqL, nl)+float64(nr)*variance(sumR, sumSqR, nr))/float64(n)
		if gain > best {
			best = gain
			thr = (lv + rv) / 2
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	return best, thr, true
}
