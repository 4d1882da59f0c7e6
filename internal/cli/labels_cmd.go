package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThalusA/PLDGenerator/internal/cli/formatter"
)

func newLabelsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "Create the category labels missing from the repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			svc, err := app.openServices(cmd)
			if err != nil {
				return err
			}
			defer svc.release(&err)

			statuses, err := svc.labels.Ensure(cmd.Context())
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLabels(statuses))
			return err
		},
	}
}
