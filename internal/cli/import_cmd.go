package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThalusA/PLDGenerator/internal/cli/formatter"
	"github.com/ThalusA/PLDGenerator/internal/document"
	"github.com/ThalusA/PLDGenerator/internal/report"
)

func newImportCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create or update the tracker issues of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			f, err := document.Load(args[0])
			if err != nil {
				return fmt.Errorf("loading document: %w", err)
			}

			svc, err := app.openServices(cmd)
			if err != nil {
				return err
			}
			defer svc.release(&err)

			if !yes {
				stats := report.Compute(&f.PLD)
				ok, err := app.confirm(
					fmt.Sprintf("Push %q to %s/%s?", f.Title, app.Config.Owner, app.Config.Repo),
					fmt.Sprintf("%d deliverables, %d user stories", len(f.Deliverables), stats.Stories),
				)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Import cancelled."))
					return nil
				}
			}

			result, err := svc.imports.Import(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(result))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
