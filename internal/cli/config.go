package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/extsrc-labs/extsrc/internal/config"
	"github.com/extsrc-labs/extsrc/internal/logging"
	"github.com/extsrc-labs/extsrc/internal/searchpath"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write settings stored at ~/.extsrc/config.yaml.

Keys:
  storage       sources file (default ~/.extsrc/sources.json)
  log_level     debug, info, warn or error (default warn)
  search_path   directories the search path starts with, in PATH form`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value, err := normalizeSetting(args[0], args[1])
		if err != nil {
			return err
		}
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.CheckKey(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every setting with its effective value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "KEY\tVALUE")
		for _, k := range config.Keys() {
			fmt.Fprintf(w, "%s\t%s\n", k, config.Get(k))
		}
		return w.Flush()
	},
}

// normalizeSetting checks key and rewrites value into the form the rest of
// the CLI reads back: an absolute sources file, a known log level, and a
// duplicate-free search path.
func normalizeSetting(key, value string) (string, string, error) {
	if err := config.CheckKey(key); err != nil {
		return "", "", err
	}
	switch key {
	case config.KeyStorage:
		abs, err := normalizePath(value)
		if err != nil {
			return "", "", err
		}
		return key, abs, nil
	case config.KeyLogLevel:
		lvl, err := logging.ParseLevel(value)
		if err != nil {
			return "", "", err
		}
		return key, lvl.String(), nil
	case config.KeySearchPath:
		return key, searchpath.Parse(value).String(), nil
	}
	return key, value, nil
}
