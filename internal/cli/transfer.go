package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the source list to a file",
	Long: `Write every source, enabled or not, to a JSON file in load order. The file
can be shared and merged elsewhere with "extsrc import".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		if err := s.reg.Export(args[0]); err != nil {
			return fmt.Errorf("exporting sources: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d sources to %s.\n", s.reg.Len(), args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge sources from a file",
	Long: `Append the sources listed in a JSON file that are not registered yet, in
file order. Sources that are already registered keep their position and
enabled flag even if the file disagrees.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		s.report(cmd.OutOrStdout())

		added, err := s.reg.Import(args[0])
		if err != nil {
			return fmt.Errorf("importing sources: %w", err)
		}
		if err := s.save(); err != nil {
			return err
		}
		printf(cmd.OutOrStdout(), msgImported, len(added), args[0])
		return nil
	},
}
