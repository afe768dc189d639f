package cli

import (
	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <claim-id>",
		Short: "Show a claim with its ledger and totals",
		Long: `Show a point-in-time snapshot of a claim: header, lifecycle state,
the full ordered ledger, and totals recomputed from it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			svc, st, err := openService(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			view, err := svc.GetClaimView(cmd.Context(), args[0])
			if err != nil {
				return f.DomainError(err)
			}
			return f.ClaimView(view)
		},
	}
}
