package scaling

import (
	"github.com/kilianp07/premium/core/artifact"
	"github.com/kilianp07/premium/core/factory"
	"github.com/kilianp07/premium/core/prediction"
)

// Column transformer artifact kinds.
const (
	KindColumnTransformer = "column_transformer"
	KindStandardScaler    = "standard_scaler"
)

func init() {
	_ = artifact.RegisterColumnTransformer(KindColumnTransformer, func(conf map[string]any) (prediction.ColumnTransformer, error) {
		var c ColumnTransformerConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return orNil(NewColumnTransformer(c))
	})
	_ = artifact.RegisterColumnTransformer(KindStandardScaler, func(conf map[string]any) (prediction.ColumnTransformer, error) {
		var c StandardScalerConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return orNil(NewStandardScaler(c))
	})

	_ = artifact.RegisterTargetTransformer(TargetIdentity, func(conf map[string]any) (prediction.TargetTransformer, error) {
		var c struct{}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return Identity{}, nil
	})
	_ = artifact.RegisterTargetTransformer(TargetLog1p, func(conf map[string]any) (prediction.TargetTransformer, error) {
		var c struct{}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return Log1p{}, nil
	})
	_ = artifact.RegisterTargetTransformer(TargetStandard, func(conf map[string]any) (prediction.TargetTransformer, error) {
		var c StandardTargetConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		t, err := NewStandardTarget(c)
		if err != nil {
			return nil, err
		}
		return t, nil
	})
	_ = artifact.RegisterTargetTransformer(TargetMinMax, func(conf map[string]any) (prediction.TargetTransformer, error) {
		var c MinMaxTargetConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		t, err := NewMinMaxTarget(c)
		if err != nil {
			return nil, err
		}
		return t, nil
	})
}

func orNil(ct *ColumnTransformer, err error) (prediction.ColumnTransformer, error) {
	if err != nil {
		return nil, err
	}
	return ct, nil
}
