package prediction

import (
	"context"
	"sync"

	"github.com/kilianp07/premium/core/features"
)

// MockRegressor returns a configured value and remembers the rows it saw.
type MockRegressor struct {
	Value float64
	Err   error
	Width int

	mu   sync.Mutex
	rows [][]float64
}

// Predict records x and returns the configured value or error.
func (m *MockRegressor) Predict(x []float64) (float64, error) {
	m.mu.Lock()
	cp := make([]float64, len(x))
	copy(cp, x)
	m.rows = append(m.rows, cp)
	m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Value, nil
}

// NumFeatures returns Width or the full feature count when unset.
func (m *MockRegressor) NumFeatures() int {
	if m.Width == 0 {
		return features.Count
	}
	return m.Width
}

func (m *MockRegressor) Kind() string { return "mock" }

// Rows returns copies of every row passed to Predict.
func (m *MockRegressor) Rows() [][]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]float64, len(m.rows))
	copy(out, m.rows)
	return out
}

// MockPipeline returns a fixed prediction or error.
type MockPipeline struct {
	Value float64
	Err   error
}

func (m MockPipeline) Predict(context.Context, features.Vector) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Value, nil
}

func (MockPipeline) Mode() Mode        { return ModeRaw }
func (MockPipeline) ModelKind() string { return "mock" }
