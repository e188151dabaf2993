package cli

import (
	"github.com/extsrc-labs/extsrc/internal/registry"
	"github.com/spf13/cobra"
)

var setPathCmd = &cobra.Command{
	Use:   "set-path <id|path> <new-path>",
	Short: "Point an extension source at a different directory",
	Long: `Change the directory of a source while keeping its position and flag.
Fails if another source already uses the new path.

Example:
  extsrc set-path 2 ~/work/renamed-extensions`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		newPath, err := normalizePath(args[1])
		if err != nil {
			return err
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		s.report(cmd.OutOrStdout())

		src, err := s.resolve(args[0])
		if err != nil {
			return err
		}
		if _, err := s.reg.Update(src.ID(), registry.Patch{Path: &newPath}); err != nil {
			return err
		}
		return s.save()
	},
}

func init() {
	rootCmd.AddCommand(setPathCmd)
}
