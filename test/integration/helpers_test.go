//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/extsrc-labs/extsrc/internal/loader"
	"github.com/extsrc-labs/extsrc/internal/registry"
	"github.com/extsrc-labs/extsrc/internal/searchpath"
	"github.com/rs/zerolog"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // EXTSRC_HOME, holds config.yaml and sources.json
	SourcesDir string // parent of every source directory a test creates
}

// setupTestEnv creates isolated temp directories and points EXTSRC_HOME at
// one of them so nothing touches the real home directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		SourcesDir: t.TempDir(),
	}
	t.Setenv("EXTSRC_HOME", env.HomeDir)
	return env
}

// storage returns the sources file inside the test home.
func (e *testEnv) storage() string {
	return filepath.Join(e.HomeDir, "sources.json")
}

// stack is a registry wired to a real search path and loader, the way the
// CLI wires them.
type stack struct {
	Reg    *registry.Registry
	Path   *searchpath.List
	Loader *loader.Loader
}

// open builds a registry over storage, seeding the search path with seed.
func open(t *testing.T, storage string, seed ...string) *stack {
	t.Helper()

	sp := searchpath.New(seed...)
	ld := loader.New(zerolog.Nop())
	reg, err := registry.New(storage, sp, ld)
	if err != nil {
		t.Fatalf("registry.New(%s): %v", storage, err)
	}
	return &stack{Reg: reg, Path: sp, Loader: ld}
}

// setupSource creates a source directory holding one module per entry in
// modules (name -> version). Returns the source path.
func setupSource(t *testing.T, parent, name string, modules map[string]string) string {
	t.Helper()

	dir := filepath.Join(parent, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating source %s: %v", dir, err)
	}
	for mod, version := range modules {
		writeManifest(t, dir, mod, "name: "+mod+"\nversion: "+version+"\ndescription: "+mod+" from "+name+"\nentry: init.lua\n")
		writeFile(t, filepath.Join(dir, mod, "init.lua"), "return {}\n")
	}
	return dir
}

// writeManifest creates module.yaml at sourceDir/<modDir>/module.yaml.
func writeManifest(t *testing.T, sourceDir, modDir, content string) {
	t.Helper()
	writeFile(t, filepath.Join(sourceDir, modDir, loader.ManifestFile), content)
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// assertModule fails unless the loader resolved name to version from source.
func assertModule(t *testing.T, ld *loader.Loader, name, version, source string) {
	t.Helper()
	m, ok := ld.Lookup(name)
	if !ok {
		t.Errorf("module %s not loaded", name)
		return
	}
	if m.Version != version || m.Source != source {
		t.Errorf("module %s = %s from %s, want %s from %s", name, m.Version, m.Source, version, source)
	}
}
