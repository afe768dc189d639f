package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/MamurS/InsurTech-sub004/internal/claims"
	"github.com/MamurS/InsurTech-sub004/internal/importer"
	"github.com/MamurS/InsurTech-sub004/internal/service"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Domain failure (guard rejected, bad transition, duplicate, etc.)
	ExitCommandError = 2 // Command error (invalid paths, database not found, etc.)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`    // domain error code (INVALID_INPUT, NOT_FOUND, ...)
	Message string `json:"message"` // human-readable message
	Details any    `json:"details,omitempty"`
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// ClaimView renders a claim snapshot: JSON response or a human-readable
// block with money formatted in the policy currency.
func (f *OutputFormatter) ClaimView(v *service.ClaimView) error {
	if f.Format == "json" {
		return f.Success(v)
	}
	writeClaimView(f.Writer, v)
	return nil
}

// Coverage renders a policy coverage record.
func (f *OutputFormatter) Coverage(cov claims.Coverage) error {
	if f.Format == "json" {
		return f.Success(cov)
	}
	fmt.Fprintf(f.Writer, "Policy %s\n", cov.PolicyID)
	fmt.Fprintf(f.Writer, "  Period:   %s .. %s\n", cov.Inception, cov.Expiry)
	fmt.Fprintf(f.Writer, "  Currency: %s\n", cov.Currency)
	fmt.Fprintf(f.Writer, "  Share:    %s%%\n", cov.SharePercent)
	fmt.Fprintf(f.Writer, "  Basis:    %s\n", cov.Basis)
	if !cov.Retroactive.IsZero() {
		fmt.Fprintf(f.Writer, "  Retroactive: %s\n", cov.Retroactive)
	}
	return nil
}

// ClaimList renders one summary line per claim.
func (f *OutputFormatter) ClaimList(views []*service.ClaimView) error {
	if f.Format == "json" {
		return f.Success(views)
	}
	if len(views) == 0 {
		fmt.Fprintln(f.Writer, "No claims found.")
		return nil
	}
	for _, v := range views {
		fmt.Fprintf(f.Writer, "%-14s %-13s %-13s loss %-10s outstanding %s\n",
			v.Claim.ClaimNumber,
			v.Claim.Status,
			v.Claim.Liability,
			orDash(v.Claim.LossDate.String()),
			claims.FormatAmount(v.Totals.OutstandingShare, v.Coverage.Currency),
		)
	}
	return nil
}

// ImportSummary renders the outcome of a bulk import.
func (f *OutputFormatter) ImportSummary(sum *importer.Summary) error {
	if f.Format == "json" {
		type jsonSummary struct {
			Total    int      `json:"total"`
			Imported int      `json:"imported"`
			Skipped  int      `json:"skipped"`
			Failed   int      `json:"failed"`
			DryRun   bool     `json:"dry_run"`
			Errors   []string `json:"errors,omitempty"`
		}
		js := jsonSummary{
			Total:    sum.Total,
			Imported: sum.Imported,
			Skipped:  sum.Skipped,
			Failed:   sum.Failed,
			DryRun:   sum.DryRun,
		}
		for _, e := range sum.Errors {
			js.Errors = append(js.Errors, e.Error())
		}
		return f.Success(js)
	}

	if sum.DryRun {
		fmt.Fprintln(f.Writer, "Dry run: no rows were written.")
	}
	fmt.Fprintf(f.Writer, "Rows:     %d\n", sum.Total)
	fmt.Fprintf(f.Writer, "Imported: %d\n", sum.Imported)
	fmt.Fprintf(f.Writer, "Skipped:  %d\n", sum.Skipped)
	fmt.Fprintf(f.Writer, "Failed:   %d\n", sum.Failed)
	for _, e := range sum.Errors {
		fmt.Fprintf(f.Writer, "  - %v\n", e)
	}
	return nil
}

// DomainError renders a domain error through the formatter and converts it
// into an ExitError: claims errors exit 1, everything else exits 2.
func (f *OutputFormatter) DomainError(err error) error {
	var derr *claims.Error
	if errors.As(err, &derr) {
		_ = f.Error(string(derr.Code), derr.Message, derr.Details)
		return NewExitError(ExitFailure, derr.Error())
	}
	return WrapExitError(ExitCommandError, "command failed", err)
}

func writeClaimView(w io.Writer, v *service.ClaimView) {
	c := v.Claim
	cur := v.Coverage.Currency

	fmt.Fprintf(w, "Claim %s (policy %s)\n", c.ClaimNumber, c.PolicyID)
	fmt.Fprintf(w, "  ID:          %s\n", c.ID)
	fmt.Fprintf(w, "  Status:      %s\n", c.Status)
	fmt.Fprintf(w, "  Liability:   %s", c.Liability)
	if c.LiabilityReason != "" {
		fmt.Fprintf(w, " (%s)", c.LiabilityReason)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Loss date:   %s\n", orDash(c.LossDate.String()))
	fmt.Fprintf(w, "  Report date: %s\n", c.ReportDate)
	if c.ClosedDate != nil {
		fmt.Fprintf(w, "  Closed:      %s\n", c.ClosedDate.Format("2006-01-02"))
	}
	if c.Claimant != "" {
		fmt.Fprintf(w, "  Claimant:    %s\n", c.Claimant)
	}
	if c.Location != "" {
		fmt.Fprintf(w, "  Location:    %s\n", c.Location)
	}
	if c.Description != "" {
		fmt.Fprintf(w, "  Description: %s\n", c.Description)
	}

	fmt.Fprintf(w, "Totals (%s, share %s%%)\n", cur, v.Coverage.SharePercent.String())
	fmt.Fprintf(w, "  Incurred:    %s gross  %s share\n",
		claims.FormatAmount(v.Totals.IncurredGross, cur), claims.FormatAmount(v.Totals.IncurredShare, cur))
	fmt.Fprintf(w, "  Paid:        %s gross  %s share\n",
		claims.FormatAmount(v.Totals.PaidGross, cur), claims.FormatAmount(v.Totals.PaidShare, cur))
	fmt.Fprintf(w, "  Recovered:   %s gross  %s share\n",
		claims.FormatAmount(v.Totals.RecoveredGross, cur), claims.FormatAmount(v.Totals.RecoveredShare, cur))
	fmt.Fprintf(w, "  Outstanding: %s gross  %s share\n",
		claims.FormatAmount(v.Totals.OutstandingGross, cur), claims.FormatAmount(v.Totals.OutstandingShare, cur))

	if c.Liability == claims.LiabilityInformational {
		fmt.Fprintln(w, "Ledger: none (informational claim, imported figures only)")
		return
	}
	fmt.Fprintf(w, "Transactions (%d)\n", len(v.Transactions))
	for _, tx := range v.Transactions {
		fmt.Fprintf(w, "  %-10s %-14s %14s gross %14s share",
			tx.Date, tx.Type,
			claims.FormatAmount(tx.AmountGross, tx.Currency),
			claims.FormatAmount(tx.AmountShare, tx.Currency))
		if tx.Notes != "" {
			fmt.Fprintf(w, "  %s", tx.Notes)
		}
		fmt.Fprintln(w)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
