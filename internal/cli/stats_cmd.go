package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThalusA/PLDGenerator/internal/cli/formatter"
	"github.com/ThalusA/PLDGenerator/internal/document"
)

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats FILE",
		Short: "Show man-day totals and the advancement report of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := document.Load(args[0])
			if err != nil {
				return fmt.Errorf("loading document: %w", err)
			}
			dict, err := app.Locales.Load(f.Locale)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStats(dict, &f.PLD))
			return nil
		},
	}
}
