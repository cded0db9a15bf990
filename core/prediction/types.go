package prediction

import (
	"context"

	"github.com/kilianp07/premium/core/features"
)

// Mode names a pipeline variant.
type Mode string

const (
	ModeRaw    Mode = "raw"
	ModeScaled Mode = "scaled"
)

// Regressor maps one input row to a scalar.
type Regressor interface {
	// Predict evaluates the model on a single row of NumFeatures values.
	Predict(x []float64) (float64, error)
	// NumFeatures is the row width the model was trained on.
	NumFeatures() int
	// Kind is the artifact type the regressor was loaded from.
	Kind() string
}

// ColumnTransformer scales a named feature row into a model input vector.
type ColumnTransformer interface {
	Transform(row map[string]float64) ([]float64, error)
	// Columns lists every input column the transformer reads.
	Columns() []string
	// OutputWidth is the length of the vectors Transform returns.
	OutputWidth() int
}

// TargetTransformer converts between the premium unit and the model's output
// scale.
type TargetTransformer interface {
	Transform(y float64) (float64, error)
	InverseTransform(y float64) (float64, error)
}

// Pipeline produces a premium from a feature vector.
type Pipeline interface {
	Predict(ctx context.Context, v features.Vector) (float64, error)
	Mode() Mode
	// ModelKind reports the regressor artifact type.
	ModelKind() string
}

// Describer is implemented by regressors that can summarise their shape.
type Describer interface {
	Describe() string
}
