package cli

import (
	"github.com/spf13/cobra"

	"github.com/MamurS/InsurTech-sub004/internal/service"
)

// RegisterOptions holds flags for the register command.
type RegisterOptions struct {
	*RootOptions
	Policy         string
	LossDate       string
	ReportDate     string
	Description    string
	Claimant       string
	Location       string
	IdempotencyKey string
}

// NewRegisterCommand creates the register command.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RegisterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "register <claim-number>",
		Short: "Register a loss against a policy",
		Long: `Register a new claim. The coverage evaluator classifies the loss as
ACTIVE or INFORMATIONAL at registration time; an unparseable loss date is
accepted and classified INFORMATIONAL rather than rejected.

Example:
  mosaic-claims register CLM-2024-001 --policy POL-2024-17 \
    --loss-date 2024-03-15 --claimant "Acme Corp" --actor jdoe`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Policy, "policy", "", "policy id the loss is claimed against")
	cmd.Flags().StringVar(&opts.LossDate, "loss-date", "", "date of loss (YYYY-MM-DD); kept verbatim if unparseable")
	cmd.Flags().StringVar(&opts.ReportDate, "report-date", "", "date reported (defaults to today)")
	cmd.Flags().StringVar(&opts.Description, "description", "", "loss description")
	cmd.Flags().StringVar(&opts.Claimant, "claimant", "", "claimant name")
	cmd.Flags().StringVar(&opts.Location, "location", "", "loss location")
	cmd.Flags().StringVar(&opts.IdempotencyKey, "idempotency-key", "", "stable id for safe retries")
	_ = cmd.MarkFlagRequired("policy")

	return cmd
}

func runRegister(opts *RegisterOptions, claimNumber string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	svc, st, err := openService(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	view, err := svc.RegisterClaim(cmd.Context(), service.RegisterClaimParams{
		PolicyID:       opts.Policy,
		ClaimNumber:    claimNumber,
		LossDate:       opts.LossDate,
		ReportDate:     opts.ReportDate,
		Description:    opts.Description,
		Claimant:       opts.Claimant,
		Location:       opts.Location,
		Actor:          opts.Actor,
		IdempotencyKey: opts.IdempotencyKey,
	})
	if err != nil {
		return f.DomainError(err)
	}
	return f.ClaimView(view)
}
