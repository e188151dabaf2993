package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addDisabled bool

var addCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Add an extension source directory",
	Long: `Add a directory to the end of the source list. The path is made absolute.
Enabled sources are put on the search path and their modules are loaded.

Adding a path that is already registered changes nothing.

Example:
  extsrc add ~/work/lua-extensions
  extsrc add ./vendor/plugins --disabled`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := normalizePath(args[0])
		if err != nil {
			return err
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		s.report(cmd.OutOrStdout())

		if s.reg.Add(path, !addDisabled) == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Source %s is already registered.\n", path)
			return nil
		}
		return s.save()
	},
}

func init() {
	addCmd.Flags().BoolVar(&addDisabled, "disabled", false, "Register the source without enabling it")
	rootCmd.AddCommand(addCmd)
}
