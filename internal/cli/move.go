package cli

import (
	"github.com/extsrc-labs/extsrc/internal/registry"
	"github.com/spf13/cobra"
)

var (
	moveBefore string
	moveAfter  string
)

var moveCmd = &cobra.Command{
	Use:   "move <id|path>... (--before <id|path> | --after <id|path>)",
	Short: "Reorder extension sources",
	Long: `Move the selected sources next to a target source, the way a multi-select
drag does. Selected sources end up together, in their current relative order,
starting at the insertion point. Sources above the insertion point stay put.

Example:
  extsrc move 4 5 --before 2
  extsrc move ~/work/overrides --after 1`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		s.report(cmd.OutOrStdout())

		selected := make([]int, 0, len(args))
		for _, arg := range args {
			src, err := s.resolve(arg)
			if err != nil {
				return err
			}
			selected = append(selected, src.ID())
		}

		var anchor registry.Anchor
		if moveBefore != "" {
			target, err := s.resolve(moveBefore)
			if err != nil {
				return err
			}
			id := target.ID()
			anchor.Before = &id
		}
		if moveAfter != "" {
			target, err := s.resolve(moveAfter)
			if err != nil {
				return err
			}
			id := target.ID()
			anchor.After = &id
		}

		if err := s.reg.Move(selected, anchor); err != nil {
			return err
		}
		return s.save()
	},
}

func init() {
	moveCmd.Flags().StringVar(&moveBefore, "before", "", "Insert in front of this source")
	moveCmd.Flags().StringVar(&moveAfter, "after", "", "Insert behind this source")
	rootCmd.AddCommand(moveCmd)
}
