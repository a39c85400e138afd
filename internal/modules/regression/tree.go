package regression

import (
	"slices"
)

const leaf = -1

// Node is one CART node stored in a flat slice. Children always have a larger
// index than their parent.
type Node struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Value     float64
}

// Tree is a regression tree split on squared error.
type Tree struct {
	Nodes []Node
}

func (t *Tree) predict(x []float64) float64 {
	i := 0
	for steps := 0; steps <= len(t.Nodes); steps++ {
		n := t.Nodes[i]
		if n.Feature == leaf {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return t.Nodes[i].Value
}

// Depth is the length of the longest root-to-leaf path (a lone root is 0).
func (t *Tree) Depth() int {
	var walk func(i, d int) int
	walk = func(i, d int) int {
		n := t.Nodes[i]
		if n.Feature == leaf {
			return d
		}
		return max(walk(n.Left, d+1), walk(n.Right, d+1))
	}
	if len(t.Nodes) == 0 {
		return 0
	}
	return walk(0, 0)
}

type treeBuilder struct {
	X        [][]float64
	y        []float64
	maxDepth int
	minSplit int
	features int
	nodes    []Node
	scratch  []int
}

func fitTree(X [][]float64, y []float64, idx []int, maxDepth, minSplit int) Tree {
	b := &treeBuilder{
		X:        X,
		y:        y,
		maxDepth: maxDepth,
		minSplit: minSplit,
		features: len(X[0]),
		scratch:  make([]int, len(idx)),
	}
	b.build(idx, 0)
	return Tree{Nodes: b.nodes}
}

func (b *treeBuilder) build(idx []int, depth int) int {
	id := len(b.nodes)
	sum, pure := b.stats(idx)
	b.nodes = append(b.nodes, Node{Feature: leaf, Value: sum / float64(len(idx))})

	if pure || depth >= b.maxDepth || len(idx) < b.minSplit {
		return id
	}
	feature, threshold, ok := b.bestSplit(idx, sum)
	if !ok {
		return id
	}

	mid := partition(idx, func(i int) bool { return b.X[i][feature] <= threshold })
	left := b.build(idx[:mid], depth+1)
	right := b.build(idx[mid:], depth+1)

	// b.nodes may have been reallocated by the recursive calls.
	b.nodes[id] = Node{Feature: feature, Threshold: threshold, Left: left, Right: right, Value: b.nodes[id].Value}
	return id
}

func (b *treeBuilder) stats(idx []int) (float64, bool) {
	sum := 0.0
	pure := true
	first := b.y[idx[0]]
	for _, i := range idx {
		sum += b.y[i]
		if b.y[i] != first {
			pure = false
		}
	}
	return sum, pure
}

// bestSplit maximises sumL²/nL + sumR²/nR, which is equivalent to minimising
// the children's summed squared error.
func (b *treeBuilder) bestSplit(idx []int, total float64) (int, float64, bool) {
	n := len(idx)
	order := b.scratch[:n]
	bestScore := total * total / float64(n)
	bestFeature, bestThreshold, found := 0, 0.0, false

	for f := 0; f < b.features; f++ {
		copy(order, idx)
		slices.SortFunc(order, func(i, j int) int {
			switch xi, xj := b.X[i][f], b.X[j][f]; {
			case xi < xj:
				return -1
			case xi > xj:
				return 1
			default:
				return i - j
			}
		})

		sumL := 0.0
		for k := 1; k < n; k++ {
			sumL += b.y[order[k-1]]
			lo, hi := b.X[order[k-1]][f], b.X[order[k]][f]
			if lo == hi {
				continue
			}
			sumR := total - sumL
			score := sumL*sumL/float64(k) + sumR*sumR/float64(n-k)
			if score > bestScore {
				threshold := lo + (hi-lo)/2
				if threshold >= hi {
					threshold = lo
				}
				bestScore, bestFeature, bestThreshold, found = score, f, threshold, true
			}
		}
	}
	return bestFeature, bestThreshold, found
}

// partition reorders idx so that elements satisfying left come first and
// returns their count.
func partition(idx []int, left func(int) bool) int {
	mid := 0
	for k, i := range idx {
		if left(i) {
			idx[mid], idx[k] = idx[k], idx[mid]
			mid++
		}
	}
	return mid
}
