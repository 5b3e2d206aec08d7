package gateway

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Endpoint describes one remote API: its URL and the default query parameters
// every call starts from.
type Endpoint struct {
	URL    string
	Params map[string]string
}

// Endpoints is the read-only endpoint table keyed by operation name.
type Endpoints map[string]Endpoint

type rawEndpoint struct {
	URL    string         `yaml:"url"`
	Params map[string]any `yaml:"params"`
}

// LoadEndpoints reads the endpoint table from a YAML (or JSON) file.
func LoadEndpoints(path string) (Endpoints, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("endpoint config read: %w", err)
	}
	return ParseEndpoints(data)
}

// ParseEndpoints decodes an endpoint table. Scalar parameter values are kept
// in their textual form.
func ParseEndpoints(data []byte) (Endpoints, error) {
	var raw map[string]rawEndpoint
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("endpoint config unmarshal: %w", err)
	}

	endpoints := make(Endpoints, len(raw))
	for key, r := range raw {
		params := make(map[string]string, len(r.Params))
		for name, value := range r.Params {
			if value == nil {
				params[name] = ""
				continue
			}
			params[name] = fmt.Sprint(value)
		}
		endpoints[key] = Endpoint{URL: r.URL, Params: params}
	}
	return endpoints, nil
}

// MergeParams returns a new map holding defaults overlaid with params. Neither
// input is modified.
func MergeParams(defaults, params map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults)+len(params))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range params {
		merged[k] = v
	}
	return merged
}
