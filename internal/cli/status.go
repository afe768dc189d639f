package cli

import (
	"github.com/spf13/cobra"

	"github.com/MamurS/InsurTech-sub004/internal/claims"
)

// NewStatusCommand creates the status command group: close, deny, reopen.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Move a claim through its lifecycle",
		Long: `Change a claim's status. Legal transitions:

  OPEN, REOPENED  -> CLOSED, DENIED
  CLOSED, DENIED  -> REOPENED

Closing or denying stamps the closed date; reopening clears it. The
claim's financial history is untouched either way.`,
	}
	cmd.AddCommand(newStatusChangeCommand(rootOpts, "close", claims.StatusClosed,
		"Close a claim"))
	cmd.AddCommand(newStatusChangeCommand(rootOpts, "deny", claims.StatusDenied,
		"Deny a claim"))
	cmd.AddCommand(newStatusChangeCommand(rootOpts, "reopen", claims.StatusReopened,
		"Reopen a closed or denied claim"))
	return cmd
}

func newStatusChangeCommand(rootOpts *RootOptions, use string, to claims.Status, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <claim-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			svc, st, err := openService(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			view, err := svc.ChangeStatus(cmd.Context(), args[0], string(to), rootOpts.Actor)
			if err != nil {
				return f.DomainError(err)
			}
			return f.ClaimView(view)
		},
	}
}
