package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"sigs.k8s.io/yaml"

	"github.com/alexandremahdhaoui/proxmox-inventory/internal/types"
)

const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

var errInvalidOutput = errors.New("invalid output format")

// render serializes v as JSON or YAML. JSON output ends with a newline.
func render(v any, format string, pretty bool) ([]byte, error) {
	switch format {
	case "", OutputJSON:
		var (
			out []byte
			err error
		)

		if pretty {
			out, err = json.MarshalIndent(v, "", "  ")
		} else {
			out, err = json.Marshal(v)
		}

		if err != nil {
			return nil, fmt.Errorf("marshalling JSON: %w", err)
		}

		return append(out, '\n'), nil
	case OutputYAML:
		// sigs.k8s.io/yaml goes through the JSON tags, so both formats share one shape.
		out, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshalling YAML: %w", err)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q (valid values: %s, %s)", errInvalidOutput, format, OutputJSON, OutputYAML)
	}
}

// digest fingerprints a rendered inventory so that changes between runs are visible in the logs.
func digest(rendered []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(rendered))
}

// countHosts returns the number of hosts of every group, children included.
func countHosts(inventory types.Inventory) map[string]int {
	out := make(map[string]int)

	var walk func(name string, group *types.Group)
	walk = func(name string, group *types.Group) {
		out[name] = len(group.Hosts)

		for childName, child := range group.Children {
			walk(childName, child)
		}
	}

	for name, group := range inventory {
		walk(name, group)
	}

	return out
}
