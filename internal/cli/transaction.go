package cli

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/MamurS/InsurTech-sub004/internal/claims"
	"github.com/MamurS/InsurTech-sub004/internal/service"
)

// TxOptions holds flags for the tx add command.
type TxOptions struct {
	*RootOptions
	Type           string
	Date           string
	Amount         string
	Currency       string
	Share          string
	Notes          string
	Payee          string
	IdempotencyKey string
}

// NewTxCommand creates the tx command group.
func NewTxCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage a claim's financial ledger",
	}
	cmd.AddCommand(newTxAddCommand(rootOpts))
	return cmd
}

func newTxAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TxOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <claim-id>",
		Short: "Append a ledger entry to a claim",
		Long: `Append an immutable financial transaction to an open, active claim.

Amounts are entered at 100% (gross); the participation share is applied
automatically. Negative amounts are only legal for RESERVE_ADJUST.

Example:
  mosaic-claims tx add 018f2c3a-... --type RESERVE_SET \
    --date 2024-03-20 --amount 10000 --actor jdoe`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTxAdd(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", "", "transaction type (RESERVE_SET, PAYMENT, RECOVERY, ...)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Amount, "amount", "", "gross (100%) amount")
	cmd.Flags().StringVar(&opts.Currency, "currency", "", "ISO-4217 currency (defaults to policy currency)")
	cmd.Flags().StringVar(&opts.Share, "share", "", "participation share in percent (defaults to policy share)")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&opts.Payee, "payee", "", "payee for payments")
	cmd.Flags().StringVar(&opts.IdempotencyKey, "idempotency-key", "", "stable id for safe retries")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runTxAdd(opts *TxOptions, claimID string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	amount, err := decimal.NewFromString(opts.Amount)
	if err != nil {
		return f.DomainError(claims.NewInvalidInput("amount: %v", err))
	}
	var share *decimal.Decimal
	if opts.Share != "" {
		s, err := decimal.NewFromString(opts.Share)
		if err != nil {
			return f.DomainError(claims.NewInvalidInput("share: %v", err))
		}
		share = &s
	}

	svc, st, err := openService(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	view, err := svc.AddTransaction(cmd.Context(), service.AddTransactionParams{
		ClaimID:        claimID,
		Type:           opts.Type,
		Date:           opts.Date,
		AmountGross:    amount,
		Currency:       opts.Currency,
		SharePercent:   share,
		Notes:          opts.Notes,
		Payee:          opts.Payee,
		Actor:          opts.Actor,
		IdempotencyKey: opts.IdempotencyKey,
	})
	if err != nil {
		return f.DomainError(err)
	}
	return f.ClaimView(view)
}
