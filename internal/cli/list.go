package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/extsrc-labs/extsrc/internal/source"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List extension sources in load order",
	Long: `List every registered extension source in registry order, which is the
order the host loads them in.

With --json, each source is printed as {"id", "path", "path_exists", "enabled"}.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	sources := s.reg.Sources()

	if listJSON {
		records := make([]source.TransportRecord, 0, len(sources))
		for _, src := range sources {
			records = append(records, src.TransportRecord())
		}
		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling sources: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	if len(sources) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No extension sources registered.")
		fmt.Fprintln(cmd.OutOrStdout(), "Use `extsrc add <path>` to add one.")
		return nil
	}

	enabled := 0
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tPATH\tENABLED\tEXISTS")
	for _, src := range sources {
		tr := src.TransportRecord()
		if tr.Enabled {
			enabled++
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", tr.ID, tr.Path, yesNo(tr.Enabled), yesNo(tr.PathExists))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	printf(cmd.OutOrStdout(), msgSourceCount, len(sources), enabled)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
