package cli

import (
	"fmt"
	"os"

	"github.com/extsrc-labs/extsrc/internal/config"
	"github.com/extsrc-labs/extsrc/internal/persist"
	"github.com/extsrc-labs/extsrc/internal/searchpath"
	"github.com/spf13/cobra"
)

var initSearchPath string

func init() {
	initCmd.Flags().StringVar(&initSearchPath, "search-path", "", "Directories the search path starts with, in PATH form")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config directory and an empty sources file",
	Long: `Create ~/.extsrc/ with an empty sources file.

With --search-path, the directories are saved as the search_path setting so
every later command starts its search path with them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		storage := config.StoragePath()
		if _, err := os.Stat(storage); err == nil {
			return fmt.Errorf("already initialized: %s exists", storage)
		}

		fmt.Fprintf(out, "Initializing %s\n", config.Dir())
		if err := config.EnsureDir(); err != nil {
			return err
		}
		if err := persist.WriteFile(storage, nil); err != nil {
			return fmt.Errorf("creating sources file: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n", storage)

		if initSearchPath != "" {
			seed := searchpath.Parse(initSearchPath)
			if err := config.Set(config.KeySearchPath, seed.String()); err != nil {
				return fmt.Errorf("saving search path: %w", err)
			}
			fmt.Fprintf(out, "Search path starts with %s\n", seed)
		}

		fmt.Fprintf(out, "\nUse `%s add <path>` to register a source.\n", rootCmd.Name())
		return nil
	},
}
