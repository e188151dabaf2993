package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List modules found in enabled sources",
	Long: `Load every enabled source and list the modules their module.yaml manifests
describe. When two sources provide a module with the same name, the source
earlier in the list wins. Manifests that fail to load are reported on stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}

		for _, f := range s.loader.Failures() {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %v\n", f.Path, f.Err)
		}

		modules := s.loader.Modules()
		if len(modules) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No modules found in enabled sources.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tVERSION\tSOURCE\tDESCRIPTION")
		for _, m := range modules {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Name, m.Version, m.Source, m.Description)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		printf(cmd.OutOrStdout(), msgModuleCount, len(modules))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modulesCmd)
}
