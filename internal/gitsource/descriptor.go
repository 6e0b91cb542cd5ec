package gitsource

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// descriptor is the component descriptor read from the playbook's
// configured descriptor filename (antora.yml by default) at a walked
// source's root.
type descriptor struct {
	Name      string         `yaml:"name"`
	Version   versionScalar  `yaml:"version"`
	Title     string         `yaml:"title"`
	StartPage string         `yaml:"start_page"`
	Nav       []string       `yaml:"nav"`
}

// versionScalar coerces a YAML scalar of any type (string, int, float) to
// its literal string form, the way the teacher's DistributionMap coerces
// heterogeneous scalars during unmarshal.
type versionScalar string

func (v *versionScalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("version: expected a scalar")
	}
	*v = versionScalar(strings.TrimSpace(node.Value))
	return nil
}

func parseDescriptor(data []byte) (descriptor, error) {
	var d descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return descriptor{}, fmt.Errorf("%w: %v", ErrBadDescriptor, err)
	}
	if d.Name == "" || d.Version == "" {
		return descriptor{}, fmt.Errorf("%w: name and version are required", ErrBadDescriptor)
	}
	return d, nil
}
