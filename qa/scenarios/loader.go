package scenarios

import (
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"
)

// Expected is the response a request must produce.
type Expected struct {
	Status        int      `yaml:"status"`
	Prediction    *float64 `yaml:"prediction,omitempty"`
	ErrorContains string   `yaml:"error_contains,omitempty"`
}

// RequestDef derives one request from the scenario base by dropping and
// overriding fields. Raw, when set, is sent verbatim instead.
type RequestDef struct {
	Name     string         `yaml:"name"`
	Method   string         `yaml:"method,omitempty"`
	Omit     []string       `yaml:"omit,omitempty"`
	Set      map[string]any `yaml:"set,omitempty"`
	Raw      string         `yaml:"raw,omitempty"`
	Expected Expected       `yaml:"expected"`
}

type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Mode        string         `yaml:"mode"`
	Base        map[string]any `yaml:"base"`
	Requests    []RequestDef   `yaml:"requests"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Body renders the JSON payload of r against base.
func (r RequestDef) Body(base map[string]any) ([]byte, error) {
	if r.Raw != "" {
		return []byte(r.Raw), nil
	}
	body := make(map[string]any, len(base)+len(r.Set))
	for k, v := range base {
		body[k] = v
	}
	for _, k := range r.Omit {
		delete(body, k)
	}
	for k, v := range r.Set {
		body[k] = v
	}
	return json.Marshal(body)
}
