package scaling

import (
	"errors"
	"fmt"
	"math"
)

// Target transformer kinds.
const (
	TargetIdentity = "identity"
	TargetStandard = "standard"
	TargetMinMax   = "minmax"
	TargetLog1p    = "log1p"
)

// Identity leaves the target untouched.
type Identity struct{}

func (Identity) Transform(y float64) (float64, error)        { return y, nil }
func (Identity) InverseTransform(y float64) (float64, error) { return y, nil }

// StandardTarget standardises the target with a fitted mean and scale.
type StandardTarget struct {
	mean  float64
	scale float64
}

// StandardTargetConf is the conf block of a standard target artifact.
type StandardTargetConf struct {
	Mean  float64 `json:"mean"`
	Scale float64 `json:"scale"`
}

func NewStandardTarget(c StandardTargetConf) (*StandardTarget, error) {
	if c.Scale < 0 || math.IsNaN(c.Scale) || math.IsInf(c.Scale, 0) {
		return nil, fmt.Errorf("invalid scale %v", c.Scale)
	}
	scale := c.Scale
	if scale == 0 {
		scale = 1
	}
	return &StandardTarget{mean: c.Mean, scale: scale}, nil
}

func (t *StandardTarget) Transform(y float64) (float64, error) {
	return (y - t.mean) / t.scale, nil
}

func (t *StandardTarget) InverseTransform(y float64) (float64, error) {
	return y*t.scale + t.mean, nil
}

// MinMaxTarget maps [data_min, data_max] onto feature_range.
type MinMaxTarget struct {
	min, span float64
	lo, hi    float64
}

// MinMaxTargetConf is the conf block of a minmax target artifact.
type MinMaxTargetConf struct {
	DataMin      float64   `json:"data_min"`
	DataMax      float64   `json:"data_max"`
	FeatureRange []float64 `json:"feature_range"`
}

func NewMinMaxTarget(c MinMaxTargetConf) (*MinMaxTarget, error) {
	if c.DataMax < c.DataMin {
		return nil, fmt.Errorf("data_max %v below data_min %v", c.DataMax, c.DataMin)
	}
	lo, hi, err := featureRange(c.FeatureRange)
	if err != nil {
		return nil, err
	}
	span := c.DataMax - c.DataMin
	if span == 0 {
		span = 1
	}
	return &MinMaxTarget{min: c.DataMin, span: span, lo: lo, hi: hi}, nil
}

func (t *MinMaxTarget) Transform(y float64) (float64, error) {
	return (y-t.min)/t.span*(t.hi-t.lo) + t.lo, nil
}

func (t *MinMaxTarget) InverseTransform(y float64) (float64, error) {
	return (y-t.lo)/(t.hi-t.lo)*t.span + t.min, nil
}

// Log1p models log(1+y), for premiums trained on a log scale.
type Log1p struct{}

func (Log1p) Transform(y float64) (float64, error) {
	if y <= -1 {
		return 0, errors.New("log1p is undefined for values <= -1")
	}
	return math.Log1p(y), nil
}

func (Log1p) InverseTransform(y float64) (float64, error) {
	return math.Expm1(y), nil
}
