package features

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Feature names in the order the raw model was trained on.
const (
	DrivingExperience    = "Driving_experience"
	ValueVehicle         = "Value_vehicle"
	Power                = "Power"
	Weight               = "Weight"
	LengthOfVehicleUsage = "Length_of_vehicle_usage"
	RClaimsHistory       = "R_Claims_history"
	NClaimsHistory       = "N_claims_history"
	Old                  = "Old"
	Length               = "Length"
	CylinderCapacity     = "Cylinder_capacity"
	PoliciesInForce      = "Policies_in_force"
)

// Count is the number of features in a Vector.
const Count = 11

var names = [Count]string{
	DrivingExperience,
	ValueVehicle,
	Power,
	Weight,
	LengthOfVehicleUsage,
	RClaimsHistory,
	NClaimsHistory,
	Old,
	Length,
	CylinderCapacity,
	PoliciesInForce,
}

var index = func() map[string]int {
	m := make(map[string]int, Count)
	for i, n := range names {
		m[n] = i
	}
	return m
}()

// Names returns the feature names in canonical order.
func Names() []string {
	out := make([]string, Count)
	copy(out, names[:])
	return out
}

// Index reports the canonical position of a feature name.
func Index(name string) (int, bool) {
	i, ok := index[name]
	return i, ok
}

// Vector is a complete, validated set of feature values.
type Vector struct {
	values [Count]float64
}

// NewVector builds a Vector from values given in canonical order.
func NewVector(values []float64) (Vector, error) {
	var v Vector
	if len(values) != Count {
		return v, fmt.Errorf("expected %d values, got %d", Count, len(values))
	}
	for i, x := range values {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return v, fmt.Errorf("feature %s: value is not finite", names[i])
		}
	}
	copy(v.values[:], values)
	return v, nil
}

// Ordered returns a copy of the values in canonical order.
func (v Vector) Ordered() []float64 {
	out := make([]float64, Count)
	copy(out, v.values[:])
	return out
}

// Named returns the values keyed by feature name.
func (v Vector) Named() map[string]float64 {
	out := make(map[string]float64, Count)
	for i, n := range names {
		out[n] = v.values[i]
	}
	return out
}

// Problem describes why a single field was rejected.
type Problem struct {
	Field  string
	Reason string
}

func (p Problem) String() string {
	if p.Reason == reasonMissing {
		return fmt.Sprintf("missing field %q", p.Field)
	}
	return fmt.Sprintf("field %q: %s", p.Field, p.Reason)
}

const reasonMissing = "missing"

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return strings.Join(parts, "; ")
}

// Missing returns the names of fields absent from the request.
func (e *ValidationError) Missing() []string {
	var out []string
	for _, p := range e.Problems {
		if p.Reason == reasonMissing {
			out = append(out, p.Field)
		}
	}
	return out
}

// Parse converts a decoded JSON object into a Vector. Values may be JSON
// numbers or strings holding a number. Extra keys are ignored. All missing
// fields are reported first, in canonical order, followed by invalid ones.
func Parse(obj map[string]json.RawMessage) (Vector, error) {
	var (
		v       Vector
		missing []Problem
		invalid []Problem
	)
	for i, name := range names {
		raw, ok := obj[name]
		if !ok {
			missing = append(missing, Problem{Field: name, Reason: reasonMissing})
			continue
		}
		x, err := parseValue(raw)
		if err != nil {
			invalid = append(invalid, Problem{Field: name, Reason: err.Error()})
			continue
		}
		v.values[i] = x
	}
	if len(missing)+len(invalid) > 0 {
		return Vector{}, &ValidationError{Problems: append(missing, invalid...)}
	}
	return v, nil
}

// ParseJSON decodes a JSON object and parses it with Parse.
func ParseJSON(data []byte) (Vector, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return Vector{}, fmt.Errorf("request body must be a JSON object: %w", err)
	}
	if obj == nil {
		return Vector{}, fmt.Errorf("request body must be a JSON object")
	}
	return Parse(obj)
}

func parseValue(raw json.RawMessage) (float64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, fmt.Errorf("value is null")
	}
	var x float64
	switch s[0] {
	case '"':
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, fmt.Errorf("invalid string: %w", err)
		}
		str = strings.TrimSpace(str)
		if !isDecimal(str) {
			return 0, fmt.Errorf("could not convert %q to float", str)
		}
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return 0, fmt.Errorf("could not convert %q to float", str)
		}
		x = f
	case 't', 'f':
		return 0, fmt.Errorf("boolean is not a number")
	case '[', '{':
		return 0, fmt.Errorf("expected a number")
	default:
		if err := json.Unmarshal(raw, &x); err != nil {
			return 0, fmt.Errorf("invalid number %s", s)
		}
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("value is not finite")
	}
	return x, nil
}

// isDecimal rejects the base-prefixed and underscore forms ParseFloat
// accepts beyond plain decimal and scientific notation.
func isDecimal(s string) bool {
	body := strings.TrimLeft(s, "+-")
	if len(body) > 1 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') {
		return false
	}
	return !strings.Contains(s, "_")
}
