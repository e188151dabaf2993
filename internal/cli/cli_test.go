package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/extsrc-labs/extsrc/internal/config"
	"github.com/extsrc-labs/extsrc/internal/persist"
	"github.com/extsrc-labs/extsrc/internal/registry"
	"github.com/extsrc-labs/extsrc/internal/source"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// sandbox points the CLI at a fresh config directory.
func sandbox(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("EXTSRC_HOME", home)
	t.Setenv("EXTSRC_STORAGE", "")
	t.Setenv("EXTSRC_SEARCH_PATH", "")
	t.Setenv("EXTSRC_LOG_LEVEL", "")
	return home
}

// resetFlags returns every flag in the tree to its default so one test's
// flags do not leak into the next command run.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("%v: unexpected error: %v", args, err)
	}
	return out
}

func listPaths(t *testing.T, extra ...string) []string {
	t.Helper()
	out := mustRun(t, append([]string{"list", "--json"}, extra...)...)
	var records []source.TransportRecord
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("parsing list --json output %q: %v", out, err)
	}
	var paths []string
	for _, r := range records {
		paths = append(paths, r.Path)
	}
	return paths
}

func TestAddAndList(t *testing.T) {
	home := sandbox(t)
	a := filepath.Join(home, "a")
	b := filepath.Join(home, "b")
	if err := os.Mkdir(a, 0o755); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, "add", a)
	if !strings.Contains(out, "added") || !strings.Contains(out, a) {
		t.Errorf("add output = %q, want an added line for %s", out, a)
	}
	mustRun(t, "add", b, "--disabled")

	out = mustRun(t, "add", a)
	if !strings.Contains(out, "already registered") {
		t.Errorf("duplicate add output = %q", out)
	}

	if diff := cmp.Diff([]string{a, b}, listPaths(t)); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}

	out = mustRun(t, "list")
	if !strings.Contains(out, "2 sources, 1 enabled") {
		t.Errorf("list output = %q, want the summary line", out)
	}

	records, err := persist.ReadFile(filepath.Join(home, "sources.json"))
	if err != nil {
		t.Fatalf("reading sources file: %v", err)
	}
	want := []persist.Record{{Path: a, Enabled: true}, {Path: b, Enabled: false}}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("sources file mismatch (-want +got):\n%s", diff)
	}
}

func TestList_Empty(t *testing.T) {
	sandbox(t)

	out := mustRun(t, "list")
	if !strings.Contains(out, "No extension sources registered.") {
		t.Errorf("list output = %q", out)
	}
}

func TestList_SingularSummary(t *testing.T) {
	home := sandbox(t)
	mustRun(t, "add", filepath.Join(home, "only"))

	out := mustRun(t, "list")
	if !strings.Contains(out, "1 source, 1 enabled") {
		t.Errorf("list output = %q, want singular summary", out)
	}
}

func TestEnableDisableAndPath(t *testing.T) {
	home := sandbox(t)
	a := filepath.Join(home, "a")
	b := filepath.Join(home, "b")
	mustRun(t, "add", a)
	mustRun(t, "add", b)

	mustRun(t, "disable", a)
	out := mustRun(t, "path", "--lines")
	if diff := cmp.Diff(b+"\n", out); diff != "" {
		t.Errorf("path after disable mismatch (-want +got):\n%s", diff)
	}

	mustRun(t, "enable", "1")
	out = mustRun(t, "path", "--lines")
	if diff := cmp.Diff(a+"\n"+b+"\n", out); diff != "" {
		t.Errorf("path after enable mismatch (-want +got):\n%s", diff)
	}
}

func TestPath_IncludesSeed(t *testing.T) {
	home := sandbox(t)
	seed := filepath.Join(home, "seed")
	t.Setenv("EXTSRC_SEARCH_PATH", seed)
	a := filepath.Join(home, "a")
	mustRun(t, "add", a)

	out := mustRun(t, "path", "--lines")
	if diff := cmp.Diff(seed+"\n"+a+"\n", out); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestRemove(t *testing.T) {
	home := sandbox(t)
	a := filepath.Join(home, "a")
	b := filepath.Join(home, "b")
	mustRun(t, "add", a)
	mustRun(t, "add", b)

	mustRun(t, "remove", a)
	if diff := cmp.Diff([]string{b}, listPaths(t)); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}

	_, err := run(t, "remove", "/not/registered")
	if !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("remove unknown error = %v, want ErrNotFound", err)
	}
}

func TestMove(t *testing.T) {
	home := sandbox(t)
	var paths []string
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		p := filepath.Join(home, name)
		paths = append(paths, p)
		mustRun(t, "add", p)
	}

	out := mustRun(t, "move", paths[3], paths[4], "--before", paths[1])
	if !strings.Contains(out, "reordered") {
		t.Errorf("move output = %q, want a reordered line", out)
	}

	want := []string{paths[0], paths[3], paths[4], paths[1], paths[2]}
	if diff := cmp.Diff(want, listPaths(t)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestMove_RequiresOneAnchor(t *testing.T) {
	home := sandbox(t)
	a := filepath.Join(home, "a")
	b := filepath.Join(home, "b")
	mustRun(t, "add", a)
	mustRun(t, "add", b)

	if _, err := run(t, "move", b); !errors.Is(err, registry.ErrInvalidArgument) {
		t.Errorf("move without anchor error = %v, want ErrInvalidArgument", err)
	}
	if _, err := run(t, "move", b, "--before", a, "--after", a); !errors.Is(err, registry.ErrInvalidArgument) {
		t.Errorf("move with two anchors error = %v, want ErrInvalidArgument", err)
	}
}

func TestSetPath(t *testing.T) {
	home := sandbox(t)
	a := filepath.Join(home, "a")
	b := filepath.Join(home, "b")
	renamed := filepath.Join(home, "renamed")
	mustRun(t, "add", a)
	mustRun(t, "add", b)

	if _, err := run(t, "set-path", a, b); !errors.Is(err, registry.ErrPathConflict) {
		t.Errorf("set-path conflict error = %v, want ErrPathConflict", err)
	}

	mustRun(t, "set-path", a, renamed)
	if diff := cmp.Diff([]string{renamed, b}, listPaths(t)); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestExportImport(t *testing.T) {
	home := sandbox(t)
	a := filepath.Join(home, "a")
	b := filepath.Join(home, "b")
	mustRun(t, "add", a)
	mustRun(t, "add", b, "--disabled")

	exported := filepath.Join(home, "shared.json")
	mustRun(t, "export", exported)

	other := filepath.Join(home, "other.json")
	c := filepath.Join(home, "c")
	mustRun(t, "--storage", other, "add", c)

	out := mustRun(t, "--storage", other, "import", exported)
	if !strings.Contains(out, "imported 2 sources") {
		t.Errorf("import output = %q", out)
	}

	if diff := cmp.Diff([]string{c, a, b}, listPaths(t, "--storage", other)); diff != "" {
		t.Errorf("merged list mismatch (-want +got):\n%s", diff)
	}

	out = mustRun(t, "--storage", other, "import", exported)
	if !strings.Contains(out, "imported 0 sources") {
		t.Errorf("second import output = %q", out)
	}
}

func TestImport_Malformed(t *testing.T) {
	home := sandbox(t)
	bad := filepath.Join(home, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"path":"/x"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := run(t, "import", bad)
	if !errors.Is(err, persist.ErrInvalidFormat) {
		t.Errorf("import error = %v, want ErrInvalidFormat", err)
	}
}

func TestModules(t *testing.T) {
	home := sandbox(t)
	src := filepath.Join(home, "ext")
	modDir := filepath.Join(src, "greeter")
	if err := os.MkdirAll(modDir, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := "name: greeter\nversion: 0.3.0\ndescription: Says hello\n"
	if err := os.WriteFile(filepath.Join(modDir, "module.yaml"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	mustRun(t, "add", src)

	out := mustRun(t, "modules")
	for _, want := range []string{"greeter", "0.3.0", "Says hello", "1 module loaded"} {
		if !strings.Contains(out, want) {
			t.Errorf("modules output = %q, want it to contain %q", out, want)
		}
	}
}

func TestConfigSetGet(t *testing.T) {
	sandbox(t)

	mustRun(t, "config", "set", "log_level", "error")
	out := mustRun(t, "config", "get", "log_level")
	if strings.TrimSpace(out) != "error" {
		t.Errorf("config get = %q, want error", out)
	}
}

func TestResolve(t *testing.T) {
	home := sandbox(t)
	reg, err := registry.New("", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	s := &session{reg: reg}
	a := reg.Add(filepath.Join(home, "a"), true)
	numeric := reg.Add("42", true)

	tests := []struct {
		arg  string
		want *source.Source
	}{
		{"1", a},
		{filepath.Join(home, "a"), a},
		{"42", numeric},
	}
	for _, tt := range tests {
		got, err := s.resolve(tt.arg)
		if err != nil {
			t.Errorf("resolve(%q) error = %v", tt.arg, err)
			continue
		}
		if got != tt.want {
			t.Errorf("resolve(%q) = %v, want %v", tt.arg, got.Path(), tt.want.Path())
		}
	}

	if _, err := s.resolve("missing"); !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("resolve(missing) error = %v, want ErrNotFound", err)
	}
}

func TestNormalizePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := normalizePath("~/ext")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "ext") {
		t.Errorf("normalizePath(~/ext) = %q, want %q", got, filepath.Join(home, "ext"))
	}

	got, err = normalizePath("rel/../dir")
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(got) || strings.Contains(got, "..") {
		t.Errorf("normalizePath(rel/../dir) = %q, want a clean absolute path", got)
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		version    string
		constraint string
		wantErr    bool
	}{
		{"v1.4.0", ">=1.2", false},
		{"1.1.9", ">=1.2", true},
		{"dev", ">=0.0.0", true},
		{"1.0.0", "not a constraint", true},
	}
	for _, tt := range tests {
		err := checkVersion(tt.version, tt.constraint)
		if (err != nil) != tt.wantErr {
			t.Errorf("checkVersion(%q, %q) error = %v, wantErr %v", tt.version, tt.constraint, err, tt.wantErr)
		}
	}
}

func TestInit(t *testing.T) {
	home := sandbox(t)
	seed := filepath.Join(home, "seed")

	out := mustRun(t, "init", "--search-path", seed)
	if !strings.Contains(out, "Created") {
		t.Errorf("init output = %q", out)
	}

	data, err := os.ReadFile(filepath.Join(home, "sources.json"))
	if err != nil {
		t.Fatalf("reading sources file: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("sources file = %q, want an empty array", data)
	}

	out = mustRun(t, "config", "get", "search_path")
	if strings.TrimSpace(out) != seed {
		t.Errorf("search_path = %q, want %q", out, seed)
	}

	if _, err := run(t, "init"); err == nil {
		t.Error("second init should fail")
	}
}

func TestDoctor_Healthy(t *testing.T) {
	home := sandbox(t)
	a := filepath.Join(home, "a")
	if err := os.Mkdir(a, 0o755); err != nil {
		t.Fatal(err)
	}
	mustRun(t, "add", a)

	out := mustRun(t, "doctor")
	for _, want := range []string{"Sources file check:", "Sources check:", "Modules check:", "[ OK ] [1] " + a} {
		if !strings.Contains(out, want) {
			t.Errorf("doctor output = %q, want it to contain %q", out, want)
		}
	}
}

func TestDoctor_MissingSource(t *testing.T) {
	home := sandbox(t)
	mustRun(t, "add", filepath.Join(home, "gone"), "--disabled")

	out, err := run(t, "doctor", "--check-sources")
	if err == nil {
		t.Fatal("doctor should fail when a source directory is missing")
	}
	if !strings.Contains(out, "[MISS]") {
		t.Errorf("doctor output = %q, want a [MISS] line", out)
	}
}

func TestDoctor_MalformedStorage(t *testing.T) {
	home := sandbox(t)
	if err := os.WriteFile(filepath.Join(home, "sources.json"), []byte(`[{"enabled":true}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "doctor")
	if err == nil {
		t.Fatal("doctor should fail on a malformed sources file")
	}
	if !strings.Contains(out, "is malformed") {
		t.Errorf("doctor output = %q", out)
	}
	if strings.Contains(out, "Sources check:") {
		t.Errorf("doctor should stop after a malformed sources file, got %q", out)
	}
}

func TestDoctor_CheckManifest(t *testing.T) {
	home := sandbox(t)
	good := filepath.Join(home, "good.yaml")
	bad := filepath.Join(home, "bad.yaml")
	if err := os.WriteFile(good, []byte("name: ok\nversion: v1.2.3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("name: broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, "doctor", "--check-manifest", good)
	if !strings.Contains(out, "[ OK ] ok v1.2.3 is valid") {
		t.Errorf("doctor output = %q", out)
	}

	out, err := run(t, "doctor", "--check-manifest", bad)
	if err == nil || !strings.Contains(out, "version is required") {
		t.Errorf("doctor on bad manifest: err = %v, output = %q", err, out)
	}
}

func TestConfigSet_Validation(t *testing.T) {
	sandbox(t)

	if _, err := run(t, "config", "set", "colour", "auto"); !errors.Is(err, config.ErrUnknownKey) {
		t.Errorf("config set unknown key error = %v, want ErrUnknownKey", err)
	}
	if _, err := run(t, "config", "get", "colour"); !errors.Is(err, config.ErrUnknownKey) {
		t.Errorf("config get unknown key error = %v, want ErrUnknownKey", err)
	}
	if _, err := run(t, "config", "set", "log_level", "loud"); err == nil {
		t.Error("config set log_level loud should fail")
	}

	mustRun(t, "config", "set", "log_level", "DEBUG")
	if out := mustRun(t, "config", "get", "log_level"); strings.TrimSpace(out) != "debug" {
		t.Errorf("log_level = %q, want debug", out)
	}
}

func TestConfigList(t *testing.T) {
	home := sandbox(t)

	out := mustRun(t, "config", "list")
	for _, want := range []string{"storage", filepath.Join(home, "sources.json"), "log_level", "warn", "search_path"} {
		if !strings.Contains(out, want) {
			t.Errorf("config list output = %q, want it to contain %q", out, want)
		}
	}
}
