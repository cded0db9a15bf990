// Package artifact reads the serialized model, column transformer and target
// transformer files produced by the training pipeline. Each file is a JSON
// envelope naming an artifact kind and carrying its fitted parameters:
//
//	{"type": "random_forest", "conf": {"n_features": 11, "trees": [...]}}
//
// Infra packages register decoders for the kinds they implement.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kilianp07/premium/core/factory"
	"github.com/kilianp07/premium/core/prediction"
)

var (
	regressors = factory.NewRegistry[prediction.Regressor]()
	columns    = factory.NewRegistry[prediction.ColumnTransformer]()
	targets    = factory.NewRegistry[prediction.TargetTransformer]()
)

// RegisterRegressor adds a decoder for a model artifact kind.
func RegisterRegressor(kind string, f factory.Factory[prediction.Regressor]) error {
	return regressors.Register(kind, f)
}

// RegisterColumnTransformer adds a decoder for a column transformer kind.
func RegisterColumnTransformer(kind string, f factory.Factory[prediction.ColumnTransformer]) error {
	return columns.Register(kind, f)
}

// RegisterTargetTransformer adds a decoder for a target transformer kind.
func RegisterTargetTransformer(kind string, f factory.Factory[prediction.TargetTransformer]) error {
	return targets.Register(kind, f)
}

// LoadRegressor reads a model artifact from path.
func LoadRegressor(path string) (prediction.Regressor, error) {
	return load(regressors, "model", path)
}

// LoadColumnTransformer reads a column transformer artifact from path.
func LoadColumnTransformer(path string) (prediction.ColumnTransformer, error) {
	return load(columns, "column transformer", path)
}

// LoadTargetTransformer reads a target transformer artifact from path.
func LoadTargetTransformer(path string) (prediction.TargetTransformer, error) {
	return load(targets, "target transformer", path)
}

// ReadEnvelope decodes the artifact envelope without building it.
func ReadEnvelope(path string) (factory.ModuleConfig, error) {
	var env factory.ModuleConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return env, err
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("decode %s: %w", path, err)
	}
	if env.Type == "" {
		return env, fmt.Errorf("decode %s: missing artifact type", path)
	}
	return env, nil
}

func load[T any](reg *factory.Registry[T], what, path string) (T, error) {
	var zero T
	env, err := ReadEnvelope(path)
	if err != nil {
		return zero, fmt.Errorf("load %s: %w", what, err)
	}
	out, err := reg.Create(env)
	if err != nil {
		return zero, fmt.Errorf("load %s %s (%s): %w", what, path, env.Type, err)
	}
	return out, nil
}
