package model

import (
	"errors"
	"fmt"
)

const (
	KindDecisionTree     = "decision_tree"
	KindRandomForest     = "random_forest"
	KindGradientBoosting = "gradient_boosting"
	KindLinear           = "linear"
)

// DecisionTreeRegressor predicts with a single tree.
type DecisionTreeRegressor struct {
	width int
	tree  *Tree
}

// DecisionTreeConf is the conf block of a decision_tree artifact.
type DecisionTreeConf struct {
	NFeatures int    `json:"n_features"`
	Nodes     []Node `json:"nodes"`
}

func NewDecisionTree(c DecisionTreeConf) (*DecisionTreeRegressor, error) {
	if c.NFeatures <= 0 {
		return nil, errors.New("n_features must be positive")
	}
	t, err := NewTree(c.Nodes, c.NFeatures)
	if err != nil {
		return nil, err
	}
	return &DecisionTreeRegressor{width: c.NFeatures, tree: t}, nil
}

func (m *DecisionTreeRegressor) Predict(x []float64) (float64, error) {
	if err := checkWidth(x, m.width); err != nil {
		return 0, err
	}
	return m.tree.Eval(x), nil
}

func (m *DecisionTreeRegressor) NumFeatures() int { return m.width }
func (m *DecisionTreeRegressor) Kind() string     { return KindDecisionTree }

func (m *DecisionTreeRegressor) Describe() string {
	return fmt.Sprintf("depth %d", m.tree.Depth())
}

// RandomForestRegressor averages the outputs of its trees.
type RandomForestRegressor struct {
	width int
	trees []*Tree
}

// RandomForestConf is the conf block of a random_forest artifact.
type RandomForestConf struct {
	NFeatures int        `json:"n_features"`
	Trees     []TreeConf `json:"trees"`
}

func NewRandomForest(c RandomForestConf) (*RandomForestRegressor, error) {
	if c.NFeatures <= 0 {
		return nil, errors.New("n_features must be positive")
	}
	trees, err := buildTrees(c.Trees, c.NFeatures)
	if err != nil {
		return nil, err
	}
	return &RandomForestRegressor{width: c.NFeatures, trees: trees}, nil
}

func (m *RandomForestRegressor) Predict(x []float64) (float64, error) {
	if err := checkWidth(x, m.width); err != nil {
		return 0, err
	}
	var sum float64
	for _, t := range m.trees {
		sum += t.Eval(x)
	}
	return sum / float64(len(m.trees)), nil
}

func (m *RandomForestRegressor) NumFeatures() int { return m.width }
func (m *RandomForestRegressor) Kind() string     { return KindRandomForest }

// Size returns the number of trees in the forest.
func (m *RandomForestRegressor) Size() int { return len(m.trees) }

func (m *RandomForestRegressor) Describe() string {
	return fmt.Sprintf("%d trees, max depth %d", m.Size(), maxDepth(m.trees))
}

// GradientBoostingRegressor adds the scaled sum of its trees to a baseline.
type GradientBoostingRegressor struct {
	width        int
	init         float64
	learningRate float64
	trees        []*Tree
}

// GradientBoostingConf is the conf block of a gradient_boosting artifact.
type GradientBoostingConf struct {
	NFeatures    int        `json:"n_features"`
	Init         float64    `json:"init"`
	LearningRate float64    `json:"learning_rate"`
	Trees        []TreeConf `json:"trees"`
}

func NewGradientBoosting(c GradientBoostingConf) (*GradientBoostingRegressor, error) {
	if c.NFeatures <= 0 {
		return nil, errors.New("n_features must be positive")
	}
	if c.LearningRate <= 0 {
		return nil, errors.New("learning_rate must be positive")
	}
	trees, err := buildTrees(c.Trees, c.NFeatures)
	if err != nil {
		return nil, err
	}
	return &GradientBoostingRegressor{width: c.NFeatures, init: c.Init, learningRate: c.LearningRate, trees: trees}, nil
}

func (m *GradientBoostingRegressor) Predict(x []float64) (float64, error) {
	if err := checkWidth(x, m.width); err != nil {
		return 0, err
	}
	var sum float64
	for _, t := range m.trees {
		sum += t.Eval(x)
	}
	return m.init + m.learningRate*sum, nil
}

func (m *GradientBoostingRegressor) NumFeatures() int { return m.width }
func (m *GradientBoostingRegressor) Kind() string     { return KindGradientBoosting }

func (m *GradientBoostingRegressor) Describe() string {
	return fmt.Sprintf("%d trees, max depth %d, learning rate %g", len(m.trees), maxDepth(m.trees), m.learningRate)
}

func maxDepth(trees []*Tree) int {
	d := 0
	for _, t := range trees {
		d = max(d, t.Depth())
	}
	return d
}
