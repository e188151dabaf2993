package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pathLines bool

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the module search path",
	Long: `Print the search path the host would use: the configured search_path seed
followed by every enabled source, in PATH form.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		if pathLines {
			for _, p := range s.path.Paths() {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), s.path.String())
		return nil
	},
}

func init() {
	pathCmd.Flags().BoolVar(&pathLines, "lines", false, "Print one directory per line")
	rootCmd.AddCommand(pathCmd)
}
