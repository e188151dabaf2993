package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/extsrc-labs/extsrc/internal/branding"
	"github.com/spf13/cobra"
)

var (
	versionShort   bool
	versionJSON    bool
	versionRequire string
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	versionCmd.Flags().StringVar(&versionRequire, "require", "", "Fail unless the version satisfies this semver constraint (e.g. \">=1.2\")")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionRequire != "" {
			return checkVersion(buildVersion, versionRequire)
		}

		out := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(out, buildVersion)
			return nil
		}

		if versionJSON {
			info := map[string]string{
				"version": buildVersion,
				"commit":  buildCommit,
				"date":    buildDate,
			}
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), buildVersion, buildCommit, buildDate)
		return nil
	},
}

// checkVersion reports whether version satisfies constraint. Development
// builds have no semantic version and never satisfy a constraint.
func checkVersion(version, constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return fmt.Errorf("version %q is not a release version: %w", version, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("version %s does not satisfy %s", v, constraint)
	}
	return nil
}
