package playbook

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts a comma-separated scalar string or a sequence of
// strings, matching the "string or list" leniency the spec's external
// interface grants ref-matching patterns.
func (p *Patterns) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		if s == "" {
			*p = nil
			return nil
		}
		parts := strings.Split(s, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		*p = parts
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*p = list
	default:
		return fmt.Errorf("patterns: unsupported yaml node kind %v", node.Kind)
	}
	return nil
}

// MatchesCurrentBranch reports whether p consists solely of the special
// "HEAD"/"." literal meaning "the repo's current branch".
func (p Patterns) MatchesCurrentBranch() bool {
	return len(p) == 1 && (p[0] == "HEAD" || p[0] == ".")
}
