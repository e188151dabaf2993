package loader

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

// ManifestFile is the file name that marks a module directory.
const ManifestFile = "module.yaml"

// Manifest is the content of a module.yaml file.
type Manifest struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`
	Entry       string `yaml:"entry,omitempty"`
}

// ParseManifest reads and validates the manifest at path. A leading "v" on
// the version is accepted.
func ParseManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	var errs []error
	if strings.TrimSpace(m.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if m.Version == "" {
		errs = append(errs, errors.New("version is required"))
	} else if _, err := m.SemVer(); err != nil {
		errs = append(errs, fmt.Errorf("version %q: %w", m.Version, err))
	}
	return errors.Join(errs...)
}

// SemVer parses the manifest version.
func (m *Manifest) SemVer() (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(m.Version, "v"))
}
