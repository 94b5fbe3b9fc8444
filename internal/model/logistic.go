package model

import (
	"errors"
	"math"
)

// logistic is a binary logistic regression.
type logistic struct {
	coef      []float64
	intercept float64
}

func (l *logistic) proba(row []float64) ([]float64, error) {
	z := l.intercept
	for i, w := range l.coef {
		z += w * row[i]
	}
	if math.IsNaN(z) {
		return nil, errors.New("decision function is NaN")
	}
	p1 := 1 / (1 + math.Exp(-z))
	return []float64{1 - p1, p1}, nil
}
