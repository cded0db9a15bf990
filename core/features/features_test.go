package features

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRequest = `{
	"Driving_experience": 5, "Value_vehicle": 20000, "Power": 90, "Weight": 1200,
	"Length_of_vehicle_usage": 3, "R_Claims_history": 0, "N_claims_history": 0,
	"Old": 2, "Length": 4.2, "Cylinder_capacity": 1600, "Policies_in_force": 1
}`

func TestParseJSON_Ordered(t *testing.T) {
	v, err := ParseJSON([]byte(sampleRequest))
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 20000, 90, 1200, 3, 0, 0, 2, 4.2, 1600, 1}, v.Ordered())

	named := v.Named()
	assert.Len(t, named, Count)
	assert.Equal(t, 4.2, named[Length])
	assert.Equal(t, 90.0, named[Power])
}

func TestParse_NumericStrings(t *testing.T) {
	obj := map[string]json.RawMessage{}
	for i, n := range Names() {
		obj[n] = json.RawMessage(`" ` + []string{"1", "2.5", "1e3", "-4", "0", "6", "7", "8", "9", "10", "11"}[i] + ` "`)
	}
	v, err := Parse(obj)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, 1000, -4, 0, 6, 7, 8, 9, 10, 11}, v.Ordered())
}

func TestParse_MissingField(t *testing.T) {
	var obj map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(sampleRequest), &obj))
	delete(obj, Power)

	_, err := Parse(obj)
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{Power}, verr.Missing())
	assert.Contains(t, err.Error(), "Power")
}

func TestParse_ReportsAllProblems(t *testing.T) {
	var obj map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(sampleRequest), &obj))
	delete(obj, Weight)
	delete(obj, DrivingExperience)
	obj[Old] = json.RawMessage(`"abc"`)

	_, err := Parse(obj)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 3)
	assert.Equal(t, DrivingExperience, verr.Problems[0].Field)
	assert.Equal(t, Weight, verr.Problems[1].Field)
	assert.Equal(t, Old, verr.Problems[2].Field)
}

func TestParse_RejectsNonNumeric(t *testing.T) {
	cases := map[string]string{
		"null":     `null`,
		"bool":     `true`,
		"array":    `[1]`,
		"object":   `{"a":1}`,
		"empty":    `""`,
		"word":     `"ninety"`,
		"nan":      `"NaN"`,
		"infinity": `"inf"`,
		"hex":      `"0x1p3"`,
		"neg hex":  `"-0X10"`,
		"signed":   `"+-1"`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			var obj map[string]json.RawMessage
			require.NoError(t, json.Unmarshal([]byte(sampleRequest), &obj))
			obj[Power] = json.RawMessage(raw)
			_, err := Parse(obj)
			assert.Error(t, err)
		})
	}
}

func TestParseJSON_NotAnObject(t *testing.T) {
	for _, body := range []string{`[]`, `null`, `42`, `{`, ``} {
		_, err := ParseJSON([]byte(body))
		assert.Error(t, err, body)
	}
}

func TestParse_IgnoresExtraKeys(t *testing.T) {
	var obj map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(sampleRequest), &obj))
	obj["Colour"] = json.RawMessage(`"red"`)
	_, err := Parse(obj)
	assert.NoError(t, err)
}

func TestNewVector(t *testing.T) {
	_, err := NewVector([]float64{1, 2})
	assert.Error(t, err)

	v, err := NewVector([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11})
	require.NoError(t, err)
	out := v.Ordered()
	out[0] = 99
	assert.Equal(t, 1.0, v.Ordered()[0], "Ordered must return a copy")
}

func TestIndex(t *testing.T) {
	i, ok := Index(CylinderCapacity)
	assert.True(t, ok)
	assert.Equal(t, 9, i)
	_, ok = Index("Colour")
	assert.False(t, ok)
}
