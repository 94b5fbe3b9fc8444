// Package model scores feature vectors with a trained binary classifier
// exported to a JSON artifact.
package model

import (
	"errors"
	"fmt"
	"math"
)

// Classifier is a trained classifier operating on positional feature rows.
type Classifier interface {
	Predict(X [][]float64) ([]int, error)
	PredictProba(X [][]float64) ([][]float64, error)
	NumFeatures() int
	Classes() []int
}

// scorer computes class probabilities for a single row of valid width.
type scorer interface {
	proba(row []float64) ([]float64, error)
}

// base implements Classifier on top of a scorer.
type base struct {
	nFeatures int
	classes   []int
	scorer    scorer
}

func (b *base) NumFeatures() int {
	return b.nFeatures
}

func (b *base) Classes() []int {
	out := make([]int, len(b.classes))
	copy(out, b.classes)
	return out
}

// PredictProba returns one probability distribution per row, ordered like Classes.
func (b *base) PredictProba(X [][]float64) ([][]float64, error) {
	if len(X) == 0 {
		return nil, &InvocationError{Op: "predict_proba", Err: errors.New("no rows")}
	}

	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != b.nFeatures {
			return nil, &ShapeMismatchError{Want: b.nFeatures, Got: len(row)}
		}
		p, err := b.scorer.proba(row)
		if err != nil {
			return nil, &InvocationError{Op: "predict_proba", Err: err}
		}
		if err := checkDistribution(p, len(b.classes)); err != nil {
			return nil, &InvocationError{Op: "predict_proba", Err: err}
		}
		out[i] = p
	}
	return out, nil
}

// Predict returns the most probable class for each row.
func (b *base) Predict(X [][]float64) ([]int, error) {
	probas, err := b.PredictProba(X)
	if err != nil {
		var inv *InvocationError
		if errors.As(err, &inv) {
			inv.Op = "predict"
		}
		return nil, err
	}

	labels := make([]int, len(probas))
	for i, p := range probas {
		labels[i] = b.classes[argmax(p)]
	}
	return labels, nil
}

func checkDistribution(p []float64, n int) error {
	if len(p) != n {
		return fmt.Errorf("got %d probabilities for %d classes", len(p), n)
	}
	var total float64
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
			return fmt.Errorf("probability %v out of range", v)
		}
		total += v
	}
	if math.Abs(total-1) > 1e-6 {
		return fmt.Errorf("probabilities sum to %v", total)
	}
	return nil
}

// argmax returns the first index of the largest value.
func argmax(p []float64) int {
	best := 0
	for i := 1; i < len(p); i++ {
		if p[i] > p[best] {
			best = i
		}
	}
	return best
}

func normalize(counts []float64) []float64 {
	var total float64
	for _, c := range counts {
		total += c
	}
	out := make([]float64, len(counts))
	if total <= 0 {
		return out
	}
	for i, c := range counts {
		out[i] = c / total
	}
	return out
}
