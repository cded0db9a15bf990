package factory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct{ A int }

type sampleConf struct {
	A int       `json:"a"`
	B []float64 `json:"b"`
}

// Test registry registration and instantiation using Decode.
func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*sample]()
	if err := reg.Register("s", func(conf map[string]any) (*sample, error) {
		var c sampleConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sample{A: c.A + len(c.B)}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	// JSON numbers decode as float64; integer fields must still accept them.
	inst, err := reg.Create(ModuleConfig{Type: "s", Conf: map[string]any{"a": float64(3), "b": []any{1.0, 2.0}}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.A != 5 {
		t.Fatalf("expected 5 got %d", inst.A)
	}
}

// Test duplicate registration and unknown type errors.
func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("x", nil); err == nil {
		t.Fatal("expected nil factory error")
	}
	if err := reg.Register("x", func(map[string]any) (int, error) { return 2, nil }); err == nil {
		t.Fatal("expected duplicate error")
	}
	_, err := reg.Create(ModuleConfig{Type: "y"})
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected unknown type error, got %v", err)
	}
	assert.Equal(t, []string{"x"}, reg.Names())
}

func TestDecode_RejectsUnknownKeys(t *testing.T) {
	var c sampleConf
	err := Decode(map[string]any{"a": 1, "typo": 2}, &c)
	assert.Error(t, err)
}

func TestDecode_RejectsFractionalIntegers(t *testing.T) {
	var c struct {
		N int     `json:"n"`
		X float64 `json:"x"`
	}
	require.NoError(t, Decode(map[string]any{"n": 11.0, "x": 2.5}, &c))
	assert.Equal(t, 11, c.N)
	assert.Equal(t, 2.5, c.X)

	err := Decode(map[string]any{"n": 11.9}, &c)
	assert.ErrorContains(t, err, "expected an integer")
}
