package config

import (
	"errors"
	"fmt"

	"github.com/kilianp07/premium/core/prediction"
)

// Default artifact locations, relative to the working directory.
const (
	DefaultModelPath             = "rf_model.json"
	DefaultColumnTransformerPath = "column_transformer.json"
	DefaultTargetTransformerPath = "target_transformer.json"
)

// PipelineConfig selects the prediction pipeline and its artifacts.
type PipelineConfig struct {
	// Mode is "raw" (model only) or "scaled" (column transformer, model,
	// target transformer).
	Mode                  prediction.Mode `json:"mode"`
	ModelPath             string          `json:"model_path"`
	ColumnTransformerPath string          `json:"column_transformer_path"`
	TargetTransformerPath string          `json:"target_transformer_path"`
}

func (c *PipelineConfig) SetDefaults() {
	if c.Mode == "" {
		c.Mode = prediction.ModeRaw
	}
	if c.ModelPath == "" {
		c.ModelPath = DefaultModelPath
	}
	if c.ColumnTransformerPath == "" {
		c.ColumnTransformerPath = DefaultColumnTransformerPath
	}
	if c.TargetTransformerPath == "" {
		c.TargetTransformerPath = DefaultTargetTransformerPath
	}
}

func (c PipelineConfig) Validate() error {
	switch c.Mode {
	case prediction.ModeRaw, prediction.ModeScaled:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.ModelPath == "" {
		return errors.New("model_path is required")
	}
	if c.Mode == prediction.ModeScaled && (c.ColumnTransformerPath == "" || c.TargetTransformerPath == "") {
		return errors.New("scaled mode needs column_transformer_path and target_transformer_path")
	}
	return nil
}
