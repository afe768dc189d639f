package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MamurS/InsurTech-sub004/internal/importer"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	DryRun   bool
	FailFast bool
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Bulk-import a portfolio file",
		Long: `Import claims from a YAML portfolio file through the claim service.

Each row is registered like a manually entered claim: the coverage
evaluator decides liability, active rows get ledger entries from their
figures, and out-of-window rows keep their figures as informational
lump sums. Rows whose claim number already exists are skipped.

By default all row errors are collected and the valid rows imported;
--fail-fast stops at the first bad row instead.

Example:
  mosaic-claims import portfolio.yaml --actor importer --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "validate and preview without writing")
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "stop at the first row error")

	return cmd
}

func runImport(opts *ImportOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	file, err := importer.LoadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load import file", err)
	}
	f.VerboseLog("Loaded %d row(s) from %s", len(file.Rows), path)

	svc, st, err := openService(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	imp := importer.New(svc, st, opts.Actor, slog.Default())
	imp.DryRun = opts.DryRun
	if opts.FailFast {
		imp.Mode = importer.FailFast
	}

	sum, err := imp.Run(cmd.Context(), file)
	if err != nil {
		return f.DomainError(err)
	}
	if err := f.ImportSummary(sum); err != nil {
		return err
	}
	if sum.Failed > 0 {
		return NewExitError(ExitFailure, "import finished with row errors")
	}
	return nil
}
