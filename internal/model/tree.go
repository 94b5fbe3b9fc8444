package model

import (
	"errors"
	"fmt"
	"math"
)

// TreeNode is one node of an exported decision tree. Leaves have Left == -1.
type TreeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value"`
}

// IsLeaf reports whether the node has no children.
func (n TreeNode) IsLeaf() bool {
	return n.Left < 0
}

// Tree is a fitted decision tree.
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

func (t *Tree) validate(nFeatures, nClasses int) error {
	if len(t.Nodes) == 0 {
		return errors.New("tree has no nodes")
	}
	for i, node := range t.Nodes {
		if node.IsLeaf() {
			if len(node.Value) != nClasses {
				return fmt.Errorf("leaf %d has %d values for %d classes", i, len(node.Value), nClasses)
			}
			if err := checkLeafCounts(node.Value); err != nil {
				return fmt.Errorf("leaf %d: %w", i, err)
			}
			continue
		}
		if node.Feature < 0 || node.Feature >= nFeatures {
			return fmt.Errorf("node %d splits on feature %d, model has %d", i, node.Feature, nFeatures)
		}
		// children are laid out after their parent, which also rules out cycles
		if node.Left <= i || node.Left >= len(t.Nodes) || node.Right <= i || node.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has invalid children %d/%d", i, node.Left, node.Right)
		}
	}
	return nil
}

// checkLeafCounts requires finite, non-negative class counts with a positive
// total, so every leaf normalizes to a probability distribution.
func checkLeafCounts(counts []float64) error {
	var total float64
	for _, c := range counts {
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
			return fmt.Errorf("class count %v is not a finite non-negative number", c)
		}
		total += c
	}
	if total <= 0 || math.IsInf(total, 0) {
		return fmt.Errorf("class counts sum to %v", total)
	}
	return nil
}

func (t *Tree) proba(row []float64) ([]float64, error) {
	idx := 0
	for steps := 0; steps <= len(t.Nodes); steps++ {
		if idx < 0 || idx >= len(t.Nodes) {
			return nil, errors.New("invalid tree state")
		}
		node := t.Nodes[idx]
		if node.IsLeaf() {
			return normalize(node.Value), nil
		}
		if node.Feature < 0 || node.Feature >= len(row) {
			return nil, errors.New("feature index out of range")
		}
		if row[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
	return nil, errors.New("tree walk did not reach a leaf")
}

// forest averages the class probabilities of its trees.
type forest struct {
	trees []Tree
}

func (f *forest) proba(row []float64) ([]float64, error) {
	var sum []float64
	for i := range f.trees {
		p, err := f.trees[i].proba(row)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		if sum == nil {
			sum = make([]float64, len(p))
		}
		for j := range p {
			sum[j] += p[j]
		}
	}
	for j := range sum {
		sum[j] /= float64(len(f.trees))
	}
	return sum, nil
}
