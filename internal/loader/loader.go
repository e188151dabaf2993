package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// skippedDirs are never descended into while looking for manifests.
var skippedDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
}

// Module is an indexed module.
type Module struct {
	Name        string
	Version     string // normalized semantic version
	Description string
	Entry       string // entry file, relative to Dir
	Dir         string // absolute directory holding the manifest
	Source      string // source directory the module was found under
}

// Failure records a manifest or directory that could not be loaded.
type Failure struct {
	Path string
	Err  error
}

// Loader indexes modules across every source it is asked to load. When two
// sources provide a module with the same name, the one loaded first wins.
// A Loader is not safe for concurrent use.
type Loader struct {
	log      zerolog.Logger
	modules  []Module
	byName   map[string]int
	failures []Failure
}

// New returns an empty loader that logs through log.
func New(log zerolog.Logger) *Loader {
	return &Loader{log: log, byName: make(map[string]int)}
}

// LoadAllIn indexes every module under dir. Problems are recorded as
// failures and logged rather than returned.
func (l *Loader) LoadAllIn(dir string) {
	found, skipped := 0, 0

	info, err := os.Stat(dir)
	if err != nil {
		l.fail(dir, fmt.Errorf("reading source: %w", err))
		return
	}
	if !info.IsDir() {
		l.fail(dir, fmt.Errorf("source %s is not a directory", dir))
		return
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			l.fail(path, err)
			return nil // keep walking past unreadable entries
		}
		if d.IsDir() {
			if path != dir && (strings.HasPrefix(d.Name(), ".") || skippedDirs[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != ManifestFile {
			return nil
		}

		m, err := ParseManifest(path)
		if err != nil {
			l.fail(path, err)
			return nil
		}
		if l.index(dir, filepath.Dir(path), m) {
			found++
		} else {
			skipped++
		}
		return nil
	})
	if err != nil {
		l.fail(dir, fmt.Errorf("walking source: %w", err))
	}

	l.log.Debug().
		Str("source", dir).
		Int("modules", found).
		Int("shadowed", skipped).
		Msg("source loaded")
}

func (l *Loader) index(source, moduleDir string, m *Manifest) bool {
	if prev, ok := l.byName[m.Name]; ok {
		l.log.Debug().
			Str("module", m.Name).
			Str("kept", l.modules[prev].Dir).
			Str("ignored", moduleDir).
			Msg("module already loaded")
		return false
	}

	version := m.Version
	if v, err := m.SemVer(); err == nil {
		version = v.String()
	}
	l.byName[m.Name] = len(l.modules)
	l.modules = append(l.modules, Module{
		Name:        m.Name,
		Version:     version,
		Description: m.Description,
		Entry:       m.Entry,
		Dir:         moduleDir,
		Source:      source,
	})
	return true
}

func (l *Loader) fail(path string, err error) {
	l.log.Warn().Str("path", path).Err(err).Msg("module load failed")
	l.failures = append(l.failures, Failure{Path: path, Err: err})
}

// Modules returns the indexed modules in load order.
func (l *Loader) Modules() []Module {
	out := make([]Module, len(l.modules))
	copy(out, l.modules)
	return out
}

// Lookup returns the module registered under name.
func (l *Loader) Lookup(name string) (Module, bool) {
	i, ok := l.byName[name]
	if !ok {
		return Module{}, false
	}
	return l.modules[i], true
}

// Failures returns everything that could not be loaded, in order.
func (l *Loader) Failures() []Failure {
	out := make([]Failure, len(l.failures))
	copy(out, l.failures)
	return out
}
