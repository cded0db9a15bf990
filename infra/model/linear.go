package model

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LinearRegressor computes coef·x + intercept.
type LinearRegressor struct {
	coef      *mat.VecDense
	intercept float64
}

// LinearConf is the conf block of a linear artifact.
type LinearConf struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

func NewLinear(c LinearConf) (*LinearRegressor, error) {
	if len(c.Coef) == 0 {
		return nil, errors.New("coef is empty")
	}
	coef := make([]float64, len(c.Coef))
	copy(coef, c.Coef)
	return &LinearRegressor{coef: mat.NewVecDense(len(coef), coef), intercept: c.Intercept}, nil
}

func (m *LinearRegressor) Predict(x []float64) (float64, error) {
	if err := checkWidth(x, m.coef.Len()); err != nil {
		return 0, err
	}
	xv := mat.NewVecDense(len(x), x)
	return mat.Dot(m.coef, xv) + m.intercept, nil
}

func (m *LinearRegressor) NumFeatures() int { return m.coef.Len() }
func (m *LinearRegressor) Kind() string     { return KindLinear }

func (m *LinearRegressor) Describe() string {
	return fmt.Sprintf("%d coefficients", m.coef.Len())
}
