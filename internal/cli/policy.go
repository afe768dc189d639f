package cli

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/MamurS/InsurTech-sub004/internal/claims"
)

// PolicyOptions holds flags for the policy add command.
type PolicyOptions struct {
	*RootOptions
	Inception   string
	Expiry      string
	Currency    string
	Share       string
	Basis       string
	Retroactive string
}

// NewPolicyCommand creates the policy command group.
func NewPolicyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Manage policy coverage records",
	}
	cmd.AddCommand(newPolicyAddCommand(rootOpts))
	cmd.AddCommand(newPolicyShowCommand(rootOpts))
	return cmd
}

func newPolicyAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PolicyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <policy-id>",
		Short: "Add or update a policy's coverage",
		Long: `Add a policy, or replace its coverage if it already exists.

Example:
  mosaic-claims policy add POL-2024-17 \
    --inception 2024-01-01 --expiry 2024-12-31 \
    --currency USD --share 50 --basis occurrence`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPolicyAdd(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Inception, "inception", "", "policy inception date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Expiry, "expiry", "", "policy expiry date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Currency, "currency", "USD", "ISO-4217 policy currency")
	cmd.Flags().StringVar(&opts.Share, "share", "100", "participation share in percent (0-100]")
	cmd.Flags().StringVar(&opts.Basis, "basis", string(claims.BasisOccurrence), "coverage basis (occurrence|claims_made)")
	cmd.Flags().StringVar(&opts.Retroactive, "retroactive", "", "retroactive date for claims_made coverage")
	_ = cmd.MarkFlagRequired("inception")
	_ = cmd.MarkFlagRequired("expiry")

	return cmd
}

func runPolicyAdd(opts *PolicyOptions, policyID string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	cov, err := buildCoverage(opts, policyID)
	if err != nil {
		return f.DomainError(err)
	}

	_, st, err := openService(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.PutPolicy(cmd.Context(), cov); err != nil {
		return f.DomainError(err)
	}
	return f.Coverage(cov)
}

func buildCoverage(opts *PolicyOptions, policyID string) (claims.Coverage, error) {
	var cov claims.Coverage

	inception, err := claims.ParseDate(opts.Inception)
	if err != nil {
		return cov, claims.NewInvalidInput("inception: %v", err)
	}
	expiry, err := claims.ParseDate(opts.Expiry)
	if err != nil {
		return cov, claims.NewInvalidInput("expiry: %v", err)
	}
	if expiry.Before(inception) {
		return cov, claims.NewInvalidInput("expiry %s precedes inception %s", expiry, inception)
	}
	if !claims.ValidCurrency(opts.Currency) {
		return cov, claims.NewInvalidInput("unknown currency %q", opts.Currency)
	}
	share, err := decimal.NewFromString(opts.Share)
	if err != nil {
		return cov, claims.NewInvalidInput("share: %v", err)
	}
	if share.IsNegative() || share.IsZero() || share.GreaterThan(decimal.NewFromInt(100)) {
		return cov, claims.NewInvalidInput("share %s out of range (0-100]", share)
	}

	basis := claims.Basis(opts.Basis)
	switch basis {
	case claims.BasisOccurrence, claims.BasisClaimsMade:
	default:
		return cov, claims.NewInvalidInput("unknown basis %q", opts.Basis)
	}

	var retro claims.Date
	if opts.Retroactive != "" {
		retro, err = claims.ParseDate(opts.Retroactive)
		if err != nil {
			return cov, claims.NewInvalidInput("retroactive: %v", err)
		}
	}

	return claims.Coverage{
		PolicyID:     policyID,
		Inception:    inception,
		Expiry:       expiry,
		Currency:     opts.Currency,
		SharePercent: share,
		Basis:        basis,
		Retroactive:  retro,
	}, nil
}

func newPolicyShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <policy-id>",
		Short: "Show a policy's coverage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			_, st, err := openService(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			cov, err := st.GetPolicy(cmd.Context(), args[0])
			if err != nil {
				return f.DomainError(err)
			}
			return f.Coverage(cov)
		},
	}
}
