package app

import (
	"fmt"
	"time"

	"github.com/kilianp07/premium/config"
	"github.com/kilianp07/premium/core/artifact"
	coremetrics "github.com/kilianp07/premium/core/metrics"
	"github.com/kilianp07/premium/core/prediction"

	// Artifact decoders register themselves on import.
	_ "github.com/kilianp07/premium/infra/model"
	_ "github.com/kilianp07/premium/infra/scaling"
)

// LoadPipeline reads the artifacts required by cfg.Mode and assembles the
// pipeline. Raw mode never opens the transformer files.
func LoadPipeline(cfg config.PipelineConfig) (prediction.Pipeline, coremetrics.ArtifactInfo, error) {
	start := time.Now()
	info := coremetrics.ArtifactInfo{Pipeline: string(cfg.Mode)}

	model, err := artifact.LoadRegressor(cfg.ModelPath)
	if err != nil {
		return nil, info, err
	}
	info.Model = model.Kind()
	if d, ok := model.(prediction.Describer); ok {
		info.Detail = d.Describe()
	}
	info.Paths = append(info.Paths, cfg.ModelPath)

	var p prediction.Pipeline
	switch cfg.Mode {
	case prediction.ModeRaw:
		p, err = prediction.NewRawPipeline(model)
	case prediction.ModeScaled:
		var (
			columns prediction.ColumnTransformer
			target  prediction.TargetTransformer
		)
		if columns, err = artifact.LoadColumnTransformer(cfg.ColumnTransformerPath); err != nil {
			return nil, info, err
		}
		if target, err = artifact.LoadTargetTransformer(cfg.TargetTransformerPath); err != nil {
			return nil, info, err
		}
		info.Paths = append(info.Paths, cfg.ColumnTransformerPath, cfg.TargetTransformerPath)
		p, err = prediction.NewScaledPipeline(columns, model, target)
	default:
		err = fmt.Errorf("unknown pipeline mode %q", cfg.Mode)
	}
	if err != nil {
		return nil, info, fmt.Errorf("%s pipeline: %w", cfg.Mode, err)
	}
	info.LoadTime = time.Since(start)
	return p, info, nil
}
