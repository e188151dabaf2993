package cli

import (
	"fmt"

	"github.com/extsrc-labs/extsrc/internal/branding"
	"github.com/extsrc-labs/extsrc/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` keeps the ordered list of extension source directories a host
loads code modules from. Sources can be added, removed, toggled, reordered,
exported and imported; the list is saved to ~/.extsrc/sources.json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()

		flags := cmd.Root().PersistentFlags()
		if err := viper.BindPFlag(config.KeyStorage, flags.Lookup("storage")); err != nil {
			return fmt.Errorf("binding --storage: %w", err)
		}
		if err := viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level")); err != nil {
			return fmt.Errorf("binding --log-level: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("storage", "", "Sources file (default ~/.extsrc/sources.json)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
