package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/extsrc-labs/extsrc/internal/config"
	"github.com/extsrc-labs/extsrc/internal/loader"
	"github.com/extsrc-labs/extsrc/internal/persist"
	"github.com/spf13/cobra"
)

var (
	checkStorage  bool
	checkSources  bool
	checkModules  bool
	checkManifest string
)

func init() {
	doctorCmd.Flags().BoolVar(&checkStorage, "check-storage", false, "Validate the sources file")
	doctorCmd.Flags().BoolVar(&checkSources, "check-sources", false, "Verify source directories exist")
	doctorCmd.Flags().BoolVar(&checkModules, "check-modules", false, "Load enabled sources and report broken manifests")
	doctorCmd.Flags().StringVar(&checkManifest, "check-manifest", "", "Validate a module manifest at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the source list",
	Long: `Run diagnostic checks on the sources file, the source directories it lists
and the module manifests inside them. Exits non-zero if any check fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := &doctor{out: cmd.OutOrStdout()}

		anyFlag := checkStorage || checkSources || checkModules || checkManifest != ""
		if !anyFlag || checkStorage {
			d.storage(config.StoragePath())
		}
		if checkManifest != "" {
			d.manifest(checkManifest)
		}
		if anyFlag && !checkSources && !checkModules {
			return d.result()
		}

		// A broken sources file cannot be opened, so stop here.
		if d.problems > 0 {
			return d.result()
		}
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		if !anyFlag || checkSources {
			d.sources(s)
		}
		if !anyFlag || checkModules {
			d.modules(s)
		}
		return d.result()
	},
}

// doctor prints check results and counts the ones that failed.
type doctor struct {
	out      io.Writer
	problems int
}

func (d *doctor) ok(format string, args ...any) {
	fmt.Fprintf(d.out, "  [ OK ] "+format+"\n", args...)
}

func (d *doctor) info(format string, args ...any) {
	fmt.Fprintf(d.out, "  [INFO] "+format+"\n", args...)
}

func (d *doctor) fail(tag, format string, args ...any) {
	d.problems++
	fmt.Fprintf(d.out, "  ["+tag+"] "+format+"\n", args...)
}

func (d *doctor) result() error {
	if d.problems > 0 {
		return fmt.Errorf("doctor found %d problem(s)", d.problems)
	}
	return nil
}

func (d *doctor) storage(path string) {
	fmt.Fprintln(d.out, "Sources file check:")

	records, err := persist.ReadFile(path)
	var fe *persist.FormatError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		d.info("%s does not exist yet", path)
	case errors.As(err, &fe):
		d.fail("FAIL", "%s is malformed", path)
		for _, issue := range fe.Issues {
			fmt.Fprintf(d.out, "         %s: %s\n", issue.Path, issue.Message)
		}
	case err != nil:
		d.fail("FAIL", "cannot read %s: %v", path, err)
	default:
		d.ok("%s is valid (%d entries)", path, len(records))
	}
}

func (d *doctor) sources(s *session) {
	fmt.Fprintln(d.out, "Sources check:")

	sources := s.reg.Sources()
	if len(sources) == 0 {
		d.info("No extension sources registered")
		return
	}
	for _, src := range sources {
		switch {
		case !src.PathExists():
			d.fail("MISS", "[%d] %s does not exist", src.ID(), src.Path())
		case !src.Enabled():
			d.info("[%d] %s is disabled", src.ID(), src.Path())
		default:
			d.ok("[%d] %s", src.ID(), src.Path())
		}
	}
}

func (d *doctor) modules(s *session) {
	fmt.Fprintln(d.out, "Modules check:")

	for _, f := range s.loader.Failures() {
		d.fail("FAIL", "%s: %v", f.Path, f.Err)
	}
	d.ok("%d modules loaded", len(s.loader.Modules()))
}

func (d *doctor) manifest(path string) {
	fmt.Fprintln(d.out, "Manifest check:")

	m, err := loader.ParseManifest(path)
	if err != nil {
		d.fail("FAIL", "%v", err)
		return
	}
	d.ok("%s %s is valid", m.Name, m.Version)
}
