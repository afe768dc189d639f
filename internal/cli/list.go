package cli

import (
	"github.com/spf13/cobra"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Policy string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a policy's claims",
		Long:  "List all claims registered against a policy, most recent loss first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts.RootOptions, cmd)
			svc, st, err := openService(opts.RootOptions)
			if err != nil {
				return err
			}
			defer st.Close()

			views, err := svc.ListClaimViews(cmd.Context(), opts.Policy)
			if err != nil {
				return f.DomainError(err)
			}
			return f.ClaimList(views)
		},
	}

	cmd.Flags().StringVar(&opts.Policy, "policy", "", "policy id to list claims for")
	_ = cmd.MarkFlagRequired("policy")

	return cmd
}
