package playbook

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dionysius/docweave/internal/siteurl"
	"gopkg.in/yaml.v3"
)

// Load reads the playbook YAML file at path and applies defaults.
func Load(path string) (Playbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Playbook{}, fmt.Errorf("read playbook: %w", err)
	}

	var pb Playbook
	if err := yaml.Unmarshal(data, &pb); err != nil {
		return Playbook{}, fmt.Errorf("parse playbook: %w", err)
	}

	pb.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return Playbook{}, fmt.Errorf("resolve playbook directory: %w", err)
	}

	pb.defaults()

	return pb, nil
}

// defaults fills in every field the spec marks optional.
func (pb *Playbook) defaults() {
	if pb.URLs.HTMLExtensionStyle == "" {
		pb.URLs.HTMLExtensionStyle = siteurl.StyleDefault
	}
	if pb.UI.OutputDir == "" {
		pb.UI.OutputDir = filepath.Join(pb.Dir, "build", "site")
	}
	if pb.UI.DefaultLayout == "" {
		pb.UI.DefaultLayout = "default"
	}
	if pb.Runtime.CacheDir == "" {
		pb.Runtime.CacheDir = defaultCacheDir(pb.Dir)
	}
	if pb.DescriptorFilename == "" {
		pb.DescriptorFilename = "antora.yml"
	}
}

// defaultCacheDir isolates test runs into a distinct cache directory so
// they never race against or pollute a developer's real clone cache.
func defaultCacheDir(dir string) string {
	name := ".cache"
	if os.Getenv("NODE_ENV") == "test" {
		name = ".cache-test"
	}
	return filepath.Join(dir, name)
}
