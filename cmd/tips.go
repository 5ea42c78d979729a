package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "Show unlocked tips",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, depOpts{})
		if err != nil {
			return err
		}
		defer d.Close()

		tips, err := d.loader.LoadTips()
		if err != nil {
			return fmt.Errorf("load tips: %w", err)
		}

		out := cmd.OutOrStdout()
		unlocked := 0
		for _, t := range tips {
			if !d.tracker.IsUnlocked(t.ID) {
				fmt.Fprintf(out, "[locked] %s — %s\n", t.Title, t.UnlockCondition)
				continue
			}
			unlocked++
			fmt.Fprintf(out, "[%s] %s\n    %s\n", t.Category, t.Title, t.Body)
			if t.Author != "" {
				fmt.Fprintf(out, "    — %s\n", t.Author)
			}
		}
		fmt.Fprintf(out, "\n%d/%d tips unlocked\n", unlocked, len(tips))
		return nil
	},
}
