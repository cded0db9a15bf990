package prediction

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/kilianp07/premium/core/features"
)

// RawPipeline feeds the features to the regressor in canonical order.
type RawPipeline struct {
	model Regressor
}

// NewRawPipeline checks that the regressor accepts a full feature row.
func NewRawPipeline(model Regressor) (*RawPipeline, error) {
	if model == nil {
		return nil, errors.New("raw pipeline: model is required")
	}
	if model.NumFeatures() != features.Count {
		return nil, fmt.Errorf("raw pipeline: model expects %d features, request has %d", model.NumFeatures(), features.Count)
	}
	return &RawPipeline{model: model}, nil
}

func (p *RawPipeline) Predict(ctx context.Context, v features.Vector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	y, err := p.model.Predict(v.Ordered())
	if err != nil {
		return 0, NewRequestError(StageModel, err)
	}
	return finite(StageModel, y)
}

func (p *RawPipeline) Mode() Mode        { return ModeRaw }
func (p *RawPipeline) ModelKind() string { return p.model.Kind() }

// ScaledPipeline scales named features, predicts on the scaled vector and
// inverse transforms the result back to the premium unit.
type ScaledPipeline struct {
	columns ColumnTransformer
	model   Regressor
	target  TargetTransformer
}

// NewScaledPipeline validates that the three artifacts fit together.
func NewScaledPipeline(columns ColumnTransformer, model Regressor, target TargetTransformer) (*ScaledPipeline, error) {
	if columns == nil || model == nil || target == nil {
		return nil, errors.New("scaled pipeline: column transformer, model and target transformer are required")
	}
	for _, c := range columns.Columns() {
		if _, ok := features.Index(c); !ok {
			return nil, fmt.Errorf("scaled pipeline: column transformer reads unknown column %q", c)
		}
	}
	if columns.OutputWidth() != model.NumFeatures() {
		return nil, fmt.Errorf("scaled pipeline: column transformer yields %d values, model expects %d", columns.OutputWidth(), model.NumFeatures())
	}
	return &ScaledPipeline{columns: columns, model: model, target: target}, nil
}

func (p *ScaledPipeline) Predict(ctx context.Context, v features.Vector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	x, err := p.columns.Transform(v.Named())
	if err != nil {
		return 0, NewRequestError(StageTransform, err)
	}
	scaled, err := p.model.Predict(x)
	if err != nil {
		return 0, NewRequestError(StageModel, err)
	}
	y, err := p.target.InverseTransform(scaled)
	if err != nil {
		return 0, NewRequestError(StageInverse, err)
	}
	return finite(StageInverse, y)
}

func (p *ScaledPipeline) Mode() Mode        { return ModeScaled }
func (p *ScaledPipeline) ModelKind() string { return p.model.Kind() }

func finite(stage Stage, y float64) (float64, error) {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, NewRequestError(stage, fmt.Errorf("prediction is not finite (%v)", y))
	}
	return y, nil
}
