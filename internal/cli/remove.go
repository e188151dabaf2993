package cli

import "github.com/spf13/cobra"

var removeCmd = &cobra.Command{
	Use:     "remove <id|path>...",
	Aliases: []string{"rm"},
	Short:   "Remove extension sources",
	Long: `Remove one or more sources from the list. Enabled sources are also taken
off the search path. The directories themselves are left alone.

Example:
  extsrc remove 3
  extsrc remove ~/work/lua-extensions`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		s.report(cmd.OutOrStdout())

		for _, arg := range args {
			src, err := s.resolve(arg)
			if err != nil {
				return err
			}
			if _, err := s.reg.Remove(src.ID()); err != nil {
				return err
			}
		}
		return s.save()
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
