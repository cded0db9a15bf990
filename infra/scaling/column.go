package scaling

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/premium/core/features"
)

// Step kinds accepted inside a column_transformer artifact.
const (
	StepStandard    = "standard"
	StepMinMax      = "minmax"
	StepRobust      = "robust"
	StepPassthrough = "passthrough"
)

// StepConf is one fitted transformer applied to a group of columns.
type StepConf struct {
	Name         string    `json:"name"`
	Kind         string    `json:"kind"`
	Columns      []string  `json:"columns"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
	Center       []float64 `json:"center"`
	DataMin      []float64 `json:"data_min"`
	DataMax      []float64 `json:"data_max"`
	FeatureRange []float64 `json:"feature_range"`
	WithMean     *bool     `json:"with_mean"`
	WithStd      *bool     `json:"with_std"`
}

// ColumnTransformerConf is the conf block of a column_transformer artifact.
type ColumnTransformerConf struct {
	Transformers []StepConf `json:"transformers"`
	// Remainder is "drop" (default) or "passthrough" for unlisted features.
	Remainder string `json:"remainder"`
}

// StandardScalerConf is the conf block of a standard_scaler artifact.
type StandardScalerConf struct {
	FeatureNames []string  `json:"feature_names"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
}

// step computes ((x - offset) / scale) * mult + add for its columns.
type step struct {
	name    string
	columns []string
	offset  []float64
	scale   []float64
	mult    float64
	add     float64
}

// ColumnTransformer applies fitted steps to columns selected by name.
type ColumnTransformer struct {
	steps []step
	width int
}

// NewColumnTransformer validates every step and resolves the remainder.
func NewColumnTransformer(c ColumnTransformerConf) (*ColumnTransformer, error) {
	if len(c.Transformers) == 0 {
		return nil, errors.New("no transformers")
	}
	ct := &ColumnTransformer{}
	used := map[string]bool{}
	for i, sc := range c.Transformers {
		s, err := newStep(sc)
		if err != nil {
			name := sc.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("transformer %s: %w", name, err)
		}
		for _, col := range s.columns {
			used[col] = true
		}
		ct.steps = append(ct.steps, s)
	}
	switch c.Remainder {
	case "", "drop":
	case StepPassthrough:
		var rest []string
		for _, n := range features.Names() {
			if !used[n] {
				rest = append(rest, n)
			}
		}
		if len(rest) > 0 {
			ct.steps = append(ct.steps, identityStep("remainder", rest))
		}
	default:
		return nil, fmt.Errorf("unknown remainder %q", c.Remainder)
	}
	for _, s := range ct.steps {
		ct.width += len(s.columns)
	}
	return ct, nil
}

// NewStandardScaler builds a single standard step over the named columns.
func NewStandardScaler(c StandardScalerConf) (*ColumnTransformer, error) {
	names := c.FeatureNames
	if len(names) == 0 {
		names = features.Names()
	}
	return NewColumnTransformer(ColumnTransformerConf{Transformers: []StepConf{{
		Name:    "standard_scaler",
		Kind:    StepStandard,
		Columns: names,
		Mean:    c.Mean,
		Scale:   c.Scale,
	}}})
}

func newStep(c StepConf) (step, error) {
	n := len(c.Columns)
	if n == 0 {
		return step{}, errors.New("no columns")
	}
	seen := map[string]bool{}
	for _, col := range c.Columns {
		if _, ok := features.Index(col); !ok {
			return step{}, fmt.Errorf("unknown column %q", col)
		}
		if seen[col] {
			return step{}, fmt.Errorf("duplicate column %q", col)
		}
		seen[col] = true
	}
	s := identityStep(c.Name, c.Columns)
	switch c.Kind {
	case StepPassthrough:
	case StepStandard:
		if c.WithMean == nil || *c.WithMean {
			if err := sameLen("mean", c.Mean, n); err != nil {
				return step{}, err
			}
			copy(s.offset, c.Mean)
		}
		if c.WithStd == nil || *c.WithStd {
			if err := sameLen("scale", c.Scale, n); err != nil {
				return step{}, err
			}
			copy(s.scale, c.Scale)
		}
	case StepRobust:
		if err := sameLen("center", c.Center, n); err != nil {
			return step{}, err
		}
		if err := sameLen("scale", c.Scale, n); err != nil {
			return step{}, err
		}
		copy(s.offset, c.Center)
		copy(s.scale, c.Scale)
	case StepMinMax:
		if err := sameLen("data_min", c.DataMin, n); err != nil {
			return step{}, err
		}
		if err := sameLen("data_max", c.DataMax, n); err != nil {
			return step{}, err
		}
		lo, hi, err := featureRange(c.FeatureRange)
		if err != nil {
			return step{}, err
		}
		copy(s.offset, c.DataMin)
		floats.SubTo(s.scale, c.DataMax, c.DataMin)
		s.mult = hi - lo
		s.add = lo
	default:
		return step{}, fmt.Errorf("unknown kind %q", c.Kind)
	}
	for i, v := range s.scale {
		if v == 0 {
			s.scale[i] = 1
		}
	}
	return s, nil
}

func identityStep(name string, cols []string) step {
	s := step{
		name:    name,
		columns: append([]string(nil), cols...),
		offset:  make([]float64, len(cols)),
		scale:   make([]float64, len(cols)),
		mult:    1,
	}
	for i := range s.scale {
		s.scale[i] = 1
	}
	return s
}

// Transform emits each step's columns in declaration order.
func (ct *ColumnTransformer) Transform(row map[string]float64) ([]float64, error) {
	out := make([]float64, 0, ct.width)
	for _, s := range ct.steps {
		buf := make([]float64, len(s.columns))
		for i, col := range s.columns {
			v, ok := row[col]
			if !ok {
				return nil, fmt.Errorf("column %q not provided", col)
			}
			buf[i] = v
		}
		floats.Sub(buf, s.offset)
		floats.Div(buf, s.scale)
		if s.mult != 1 {
			floats.Scale(s.mult, buf)
		}
		if s.add != 0 {
			floats.AddConst(s.add, buf)
		}
		out = append(out, buf...)
	}
	return out, nil
}

// Columns lists every input column read, in output order.
func (ct *ColumnTransformer) Columns() []string {
	var out []string
	for _, s := range ct.steps {
		out = append(out, s.columns...)
	}
	return out
}

func (ct *ColumnTransformer) OutputWidth() int { return ct.width }

func sameLen(field string, v []float64, n int) error {
	if len(v) != n {
		return fmt.Errorf("%s has %d values for %d columns", field, len(v), n)
	}
	return nil
}

func featureRange(r []float64) (lo, hi float64, err error) {
	switch len(r) {
	case 0:
		return 0, 1, nil
	case 2:
		if r[0] >= r[1] {
			return 0, 0, fmt.Errorf("feature_range min %v must be below max %v", r[0], r[1])
		}
		return r[0], r[1], nil
	default:
		return 0, 0, fmt.Errorf("feature_range needs 2 values, got %d", len(r))
	}
}
