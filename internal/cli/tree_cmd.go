package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThalusA/PLDGenerator/internal/cli/formatter"
)

func newTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Show the issue hierarchy as the tracker holds it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			svc, err := app.openServices(cmd)
			if err != nil {
				return err
			}
			defer svc.release(&err)

			t, err := svc.exports.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTree(t))
			return nil
		},
	}
}
