package model

import (
	"github.com/kilianp07/premium/core/artifact"
	"github.com/kilianp07/premium/core/factory"
	"github.com/kilianp07/premium/core/prediction"
)

func init() {
	_ = artifact.RegisterRegressor(KindDecisionTree, decoder(NewDecisionTree))
	_ = artifact.RegisterRegressor(KindRandomForest, decoder(NewRandomForest))
	_ = artifact.RegisterRegressor(KindGradientBoosting, decoder(NewGradientBoosting))
	_ = artifact.RegisterRegressor(KindLinear, decoder(NewLinear))
}

// decoder adapts a typed constructor to the artifact registry.
func decoder[C any, R prediction.Regressor](build func(C) (R, error)) factory.Factory[prediction.Regressor] {
	return func(conf map[string]any) (prediction.Regressor, error) {
		var c C
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		r, err := build(c)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}
