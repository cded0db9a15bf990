package model

import (
	"errors"
	"fmt"
)

// Node is one entry of a flattened regression tree. Inner nodes route
// x[Feature] <= Threshold to Left, everything else to Right.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
	Leaf      bool    `json:"leaf"`
}

// Tree is a validated regression tree rooted at index 0.
type Tree struct {
	nodes []Node
}

// TreeConf is the serialized form of a Tree.
type TreeConf struct {
	Nodes []Node `json:"nodes"`
}

// NewTree validates the node layout against the model width. Children must
// sit after their parent, which rules out cycles and guarantees termination.
func NewTree(nodes []Node, width int) (*Tree, error) {
	if len(nodes) == 0 {
		return nil, errors.New("tree has no nodes")
	}
	for i, n := range nodes {
		if n.Leaf {
			continue
		}
		if n.Feature < 0 || n.Feature >= width {
			return nil, fmt.Errorf("node %d: feature index %d out of range [0,%d)", i, n.Feature, width)
		}
		if n.Left <= i || n.Left >= len(nodes) {
			return nil, fmt.Errorf("node %d: invalid left child %d", i, n.Left)
		}
		if n.Right <= i || n.Right >= len(nodes) {
			return nil, fmt.Errorf("node %d: invalid right child %d", i, n.Right)
		}
	}
	cp := make([]Node, len(nodes))
	copy(cp, nodes)
	return &Tree{nodes: cp}, nil
}

// Eval walks the tree for x. Bounds were checked by NewTree.
func (t *Tree) Eval(x []float64) float64 {
	idx := 0
	for {
		n := t.nodes[idx]
		if n.Leaf {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
}

// Depth returns the longest root to leaf path length.
func (t *Tree) Depth() int {
	var walk func(idx int) int
	walk = func(idx int) int {
		n := t.nodes[idx]
		if n.Leaf {
			return 0
		}
		l, r := walk(n.Left), walk(n.Right)
		if l > r {
			return l + 1
		}
		return r + 1
	}
	return walk(0)
}

func buildTrees(confs []TreeConf, width int) ([]*Tree, error) {
	if len(confs) == 0 {
		return nil, errors.New("no trees")
	}
	trees := make([]*Tree, len(confs))
	for i, c := range confs {
		t, err := NewTree(c.Nodes, width)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		trees[i] = t
	}
	return trees, nil
}

func checkWidth(x []float64, width int) error {
	if len(x) != width {
		return fmt.Errorf("expected %d features, got %d", width, len(x))
	}
	return nil
}
