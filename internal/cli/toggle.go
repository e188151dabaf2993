package cli

import (
	"github.com/extsrc-labs/extsrc/internal/registry"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}

var enableCmd = &cobra.Command{
	Use:   "enable <id|path>...",
	Short: "Enable extension sources",
	Long: `Enable sources so the host searches them. Each newly enabled source is
appended to the search path and its modules are loaded.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(cmd, args, true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <id|path>...",
	Short: "Disable extension sources",
	Long:  `Disable sources without removing them. They are taken off the search path.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(cmd, args, false)
	},
}

func setEnabled(cmd *cobra.Command, args []string, enabled bool) error {
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
		if _, err := s.reg.Update(src.ID(), registry.Patch{Enabled: &enabled}); err != nil {
			return err
		}
	}
	return s.save()
}
