// Package importer brings a claims portfolio file into the store in bulk.
//
// Rows arrive as YAML, are validated against an embedded CUE schema, and
// then flow through the regular service operations: the coverage evaluator
// decides liability, active rows get real ledger entries, and
// informational rows get their lump-sum figures. Share percentages are
// normalized here, exactly once, because upstream files encode the same
// concept both as a fraction and as a whole percentage.
package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/MamurS/InsurTech-sub004/internal/claims"
	"github.com/MamurS/InsurTech-sub004/internal/service"
	"github.com/MamurS/InsurTech-sub004/internal/store"
)

// Mode controls how row errors are handled.
type Mode int

const (
	// FailFast stops on the first row error.
	FailFast Mode = iota
	// CollectAll records every row error and imports the valid rows.
	CollectAll
)

// Row is one portfolio line. Amounts are decimal strings; YAML numeric
// scalars decode into them losslessly.
type Row struct {
	ClaimNumber string `json:"claim_number" yaml:"claim_number"`
	PolicyID    string `json:"policy_id" yaml:"policy_id"`

	LossDate    string `json:"loss_date,omitempty" yaml:"loss_date"`
	ReportDate  string `json:"report_date,omitempty" yaml:"report_date"`
	PaymentDate string `json:"payment_date,omitempty" yaml:"payment_date"`

	Description string `json:"description,omitempty" yaml:"description"`
	Claimant    string `json:"claimant,omitempty" yaml:"claimant"`
	Location    string `json:"location,omitempty" yaml:"location"`
	Notes       string `json:"notes,omitempty" yaml:"notes"`

	Currency string `json:"currency,omitempty" yaml:"currency"`

	// Share as found upstream, fraction or percent.
	Share string `json:"share,omitempty" yaml:"share"`

	TotalLoss   string `json:"total_loss,omitempty" yaml:"total_loss"`
	Reserve     string `json:"reserve,omitempty" yaml:"reserve"`
	Paid        string `json:"paid,omitempty" yaml:"paid"`
	Outstanding string `json:"outstanding,omitempty" yaml:"outstanding"`
}

// File is the import file layout.
type File struct {
	Rows []Row `yaml:"rows"`
}

// Summary reports the outcome of a run.
type Summary struct {
	Total    int
	Imported int
	Skipped  int // duplicate claim numbers
	Failed   int
	DryRun   bool
	Errors   []error
}

// Importer drives a bulk import through the claim service.
type Importer struct {
	svc   *service.Service
	store *store.Store
	log   *slog.Logger

	// Mode defaults to CollectAll, matching how portfolio files are
	// actually cleaned up: all row problems in one pass.
	Mode Mode

	// DryRun validates and previews without writing.
	DryRun bool

	// Actor is stamped on every claim and transaction created.
	Actor string
}

// New creates an Importer.
func New(svc *service.Service, st *store.Store, actor string, log *slog.Logger) *Importer {
	if log == nil {
		log = slog.Default()
	}
	return &Importer{svc: svc, store: st, Mode: CollectAll, Actor: actor, log: log}
}

// Load decodes an import file, rejecting unknown fields.
func Load(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode import file: %w", err)
	}
	return &f, nil
}

// LoadFile opens and decodes an import file from disk.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Run imports every row of the file.
//
// Each row is schema-validated, then registered through the service so
// the coverage evaluator fixes its liability type. Rows that land ACTIVE
// get RESERVE_SET / PAYMENT ledger entries built from their figures; rows
// that land INFORMATIONAL get lump-sum figures. Rows whose figures show
// fully paid and nothing outstanding are closed afterwards, mirroring the
// source portfolio's bookkeeping. Duplicate claim numbers are skipped and
// counted, not fatal.
func (imp *Importer) Run(ctx context.Context, f *File) (*Summary, error) {
	if imp.Actor == "" {
		return nil, claims.NewInvalidInput("actor is required")
	}

	sum := &Summary{Total: len(f.Rows), DryRun: imp.DryRun}
	for i, row := range f.Rows {
		rowNum := i + 1
		if err := imp.importRow(ctx, rowNum, row, sum); err != nil {
			sum.Failed++
			sum.Errors = append(sum.Errors, err)
			if imp.Mode == FailFast {
				return sum, err
			}
		}
	}

	imp.log.InfoContext(ctx, "import finished",
		"total", sum.Total,
		"imported", sum.Imported,
		"skipped", sum.Skipped,
		"failed", sum.Failed,
		"dry_run", sum.DryRun,
	)
	return sum, nil
}

func (imp *Importer) importRow(ctx context.Context, rowNum int, row Row, sum *Summary) error {
	if err := validateRow(rowNum, row); err != nil {
		return err
	}

	figures, err := parseFigures(rowNum, row)
	if err != nil {
		return err
	}

	if imp.DryRun {
		imp.log.InfoContext(ctx, "would import row",
			"row", rowNum,
			"claim_number", row.ClaimNumber,
			"policy_id", row.PolicyID,
		)
		sum.Imported++
		return nil
	}

	view, err := imp.svc.RegisterClaim(ctx, service.RegisterClaimParams{
		PolicyID:    row.PolicyID,
		ClaimNumber: row.ClaimNumber,
		LossDate:    row.LossDate,
		ReportDate:  row.ReportDate,
		Description: row.Description,
		Claimant:    row.Claimant,
		Location:    row.Location,
		Actor:       imp.Actor,
	})
	if err != nil {
		if claims.IsDuplicateKey(err) {
			sum.Skipped++
			imp.log.WarnContext(ctx, "skipping duplicate claim",
				"row", rowNum, "claim_number", row.ClaimNumber)
			return nil
		}
		return &RowError{Row: rowNum, Message: err.Error()}
	}

	if view.Claim.Liability == claims.LiabilityActive {
		err = imp.appendFigures(ctx, view, row, figures)
	} else {
		err = imp.store.SetImportedFigures(ctx, view.Claim.ID,
			figures.importedIncurred(), figures.paid)
	}
	if err != nil {
		return &RowError{Row: rowNum, Message: err.Error()}
	}

	// Fully paid and nothing outstanding means the source had already
	// closed the file on this claim.
	if figures.paid.IsPositive() && !figures.outstanding.IsPositive() {
		if _, err := imp.svc.ChangeStatus(ctx, view.Claim.ID, string(claims.StatusClosed), imp.Actor); err != nil {
			return &RowError{Row: rowNum, Message: err.Error()}
		}
	}

	sum.Imported++
	return nil
}

// appendFigures builds the ledger entries of an active row.
func (imp *Importer) appendFigures(ctx context.Context, view *service.ClaimView, row Row, f figures) error {
	date := row.LossDate
	if date == "" {
		date = view.Claim.ReportDate.String()
	}

	if f.reserve.IsPositive() {
		gross := f.totalLoss
		if !gross.IsPositive() {
			gross = f.reserve
		}
		if err := imp.addEntry(ctx, view, row, string(claims.TxReserveSet), date, gross, f,
			"Imported from portfolio (reserve)"); err != nil {
			return err
		}
	}

	if f.paid.IsPositive() {
		payDate := row.PaymentDate
		if payDate == "" {
			payDate = date
		}
		if err := imp.addEntry(ctx, view, row, string(claims.TxPayment), payDate, f.paid, f,
			"Imported from portfolio (payment)"); err != nil {
			return err
		}
	}
	return nil
}

func (imp *Importer) addEntry(ctx context.Context, view *service.ClaimView, row Row, typ, date string, gross decimal.Decimal, f figures, note string) error {
	p := service.AddTransactionParams{
		ClaimID:     view.Claim.ID,
		Type:        typ,
		Date:        date,
		AmountGross: gross,
		Currency:    row.Currency,
		Notes:       note,
		Actor:       imp.Actor,
	}
	if f.shareSet {
		share := f.share
		p.SharePercent = &share
	}
	_, err := imp.svc.AddTransaction(ctx, p)
	return err
}

// figures are the parsed monetary columns of a row.
type figures struct {
	share       decimal.Decimal
	shareSet    bool
	totalLoss   decimal.Decimal
	reserve     decimal.Decimal
	paid        decimal.Decimal
	outstanding decimal.Decimal
}

// importedIncurred is the lump incurred figure of an informational row:
// the larger of total loss and reserve, as the source portfolio computed it.
func (f figures) importedIncurred() decimal.Decimal {
	if f.totalLoss.GreaterThan(f.reserve) {
		return f.totalLoss
	}
	return f.reserve
}

// parseFigures decodes the amount columns, applying the share
// normalization rule exactly once.
func parseFigures(rowNum int, row Row) (figures, error) {
	var f figures
	var errs []error

	parse := func(field, s string, dst *decimal.Decimal) {
		if s == "" {
			return
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			errs = append(errs, &RowError{Row: rowNum, Field: field, Message: err.Error()})
			return
		}
		*dst = d
	}

	parse("total_loss", row.TotalLoss, &f.totalLoss)
	parse("reserve", row.Reserve, &f.reserve)
	parse("paid", row.Paid, &f.paid)
	parse("outstanding", row.Outstanding, &f.outstanding)

	if row.Share != "" {
		var raw decimal.Decimal
		parse("share", row.Share, &raw)
		if len(errs) == 0 {
			f.share = claims.NormalizeSharePercent(raw)
			f.shareSet = true
		}
	}

	if len(errs) > 0 {
		return f, errors.Join(errs...)
	}

	// Rows missing the outstanding column get it derived the way the
	// source portfolio computed it.
	if row.Outstanding == "" {
		f.outstanding = f.importedIncurred().Sub(f.paid)
	}
	return f, nil
}
