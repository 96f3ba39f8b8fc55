package cli

import (
	"fmt"

	"github.com/alexanderramin/parish/internal/cli/formatter"
	"github.com/alexanderramin/parish/internal/entity"
	"github.com/alexanderramin/parish/internal/importer"
	"github.com/alexanderramin/parish/internal/schedule"
	"github.com/alexanderramin/parish/internal/service"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the directory (and schedule) from a JSON or YAML seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printImportResult(cmd, res)
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write the directory and schedule to a seed file (.json, .yaml)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Import.ExportFile(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Exported to "+args[0]))
			return nil
		},
	}
}

func newSeedCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in sample parish and default Mass times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			current, err := app.Directory.Snapshot(ctx)
			if err != nil {
				return err
			}
			if current.Len() > 0 && !force {
				return fmt.Errorf("directory already holds %d entities; pass --force to replace it", current.Len())
			}

			seed, err := importer.FromStore(entity.SampleParish(), schedule.DefaultMassTimes())
			if err != nil {
				return fmt.Errorf("building sample seed: %w", err)
			}
			res, err := app.Import.ImportSeed(ctx, seed)
			if err != nil {
				return err
			}
			printImportResult(cmd, res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing directory")
	return cmd
}

func printImportResult(cmd *cobra.Command, res *service.ImportResult) {
	msg := fmt.Sprintf("Imported %d entities under %s", res.EntityCount, res.RootID)
	if res.SlotCount > 0 {
		msg += fmt.Sprintf(" and %d Mass times", res.SlotCount)
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(msg))
}
