package invoice

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"backoffice/internal/core/apperror"
	appctx "backoffice/internal/core/context"
	"backoffice/internal/core/id"
	"backoffice/internal/core/tx"
	"backoffice/internal/core/types"
	"backoffice/internal/domain"
	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/documents"
	"backoffice/pkg/logger"
	"backoffice/pkg/numerator"
)

var hundred = decimal.NewFromInt(100)

// Service provides business operations for invoices.
type Service struct {
	repo       Repository
	products   documents.ProductLookup
	reconciler *documents.Reconciler
	numerator  *numerator.Service
	txManager  tx.Manager
	auditor    audit.Recorder
}

// NewService creates an invoice service.
func NewService(
	repo Repository,
	products documents.ProductLookup,
	reconciler *documents.Reconciler,
	num *numerator.Service,
	txManager tx.Manager,
	auditor audit.Recorder,
) *Service {
	if auditor == nil {
		auditor = audit.NopRecorder{}
	}
	return &Service{
		repo:       repo,
		products:   products,
		reconciler: reconciler,
		numerator:  num,
		txManager:  txManager,
		auditor:    auditor,
	}
}

// buildLines prices the submitted line items. Every referenced product
// must exist; the unit price comes from the payload, while the tax rate
// and the captured cost come from the catalog, and subtotal and tax are
// always recomputed server-side.
func (s *Service) buildLines(ctx context.Context, inputs []documents.LineInput) ([]Line, error) {
	lines := make([]Line, 0, len(inputs))
	for i, in := range inputs {
		p, err := s.products.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}

		subtotal := types.Round2(in.Quantity.Mul(in.UnitPrice))
		tax := types.Round2(subtotal.Mul(decimal.NewFromInt(int64(p.TaxRate))).Div(hundred))

		lines = append(lines, Line{
			LineID:    id.New(),
			LineNo:    i + 1,
			ProductID: p.ID,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
			Cost:      p.Cost,
			Subtotal:  subtotal,
			Tax:       tax,
		})
	}
	return lines, nil
}

func sumTotals(lines []Line) (subtotal, tax types.Money) {
	subtotal, tax = decimal.Zero, decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal)
		tax = tax.Add(l.Tax)
	}
	return subtotal, tax
}

// Create prices the lines, persists header and lines, and decrements stock,
// all in one transaction. A line exceeding available stock aborts the whole
// operation.
func (s *Service) Create(ctx context.Context, inv *Invoice, inputs []documents.LineInput) error {
	if len(inputs) == 0 {
		return apperror.NewValidation("invoice must have at least one line").
			WithDetail("field", "lines")
	}

	inv.CreatedBy = appctx.GetUserID(ctx)
	inv.UpdatedBy = inv.CreatedBy

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		lines, err := s.buildLines(ctx, inputs)
		if err != nil {
			return err
		}
		inv.Lines = lines
		inv.SetTotals(sumTotals(lines))
		s.settlePayment(inv)

		if err := inv.Validate(ctx); err != nil {
			return err
		}

		if inv.Number == "" {
			number, err := s.numerator.Next(ctx, "FAC", time.Now())
			if err != nil {
				return fmt.Errorf("generate number: %w", err)
			}
			inv.Number = number
		}

		if err := s.repo.Create(ctx, inv); err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		if err := s.repo.SaveLines(ctx, inv.ID, inv.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		if err := s.reconciler.ApplyCreate(ctx, documents.Sale, inv.Deltas()); err != nil {
			return err
		}

		return s.recordAudit(ctx, inv, audit.ActionCreate)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "invoice created",
		"id", inv.ID,
		"number", inv.Number,
		"total", inv.Total)
	return nil
}

// settlePayment derives the change from the tendered amount.
func (s *Service) settlePayment(inv *Invoice) {
	if inv.Payment.GreaterThan(inv.Total) {
		inv.Change = inv.Payment.Sub(inv.Total)
	} else {
		inv.Change = decimal.Zero
	}
}

// GetByID retrieves an invoice with its lines.
func (s *Service) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	inv.Lines = lines

	return inv, nil
}

// Update replaces the invoice's lines and header fields. The stock effect
// of the old lines is reversed and the new one applied as a single netted
// mutation, pre-validated so a failure leaves nothing changed.
func (s *Service) Update(ctx context.Context, inv *Invoice, inputs []documents.LineInput) error {
	if len(inputs) == 0 {
		return apperror.NewValidation("invoice must have at least one line").
			WithDetail("field", "lines")
	}

	existing, err := s.GetByID(ctx, inv.ID)
	if err != nil {
		return err
	}
	if existing.IsVoided() {
		return apperror.NewConflict("cannot modify a voided invoice").
			WithDetail("invoice_id", inv.ID.String())
	}

	inv.UpdatedBy = appctx.GetUserID(ctx)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		lines, err := s.buildLines(ctx, inputs)
		if err != nil {
			return err
		}
		inv.Lines = lines
		inv.SetTotals(sumTotals(lines))
		s.settlePayment(inv)

		if err := inv.Validate(ctx); err != nil {
			return err
		}

		if err := s.reconciler.ApplyReplace(ctx, documents.Sale, existing.Deltas(), inv.Deltas()); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, inv); err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}
		if err := s.repo.SaveLines(ctx, inv.ID, inv.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return s.recordAudit(ctx, inv, audit.ActionUpdate)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "invoice updated", "id", inv.ID, "number", inv.Number)
	return nil
}

// Delete removes the invoice and its lines, restoring the stock the sale
// consumed. Voided invoices already returned their stock, so only the rows
// are removed.
func (s *Service) Delete(ctx context.Context, invoiceID id.ID) error {
	inv, err := s.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if !inv.IsVoided() {
			if err := s.reconciler.ApplyReverse(ctx, documents.Sale, inv.Deltas()); err != nil {
				return err
			}
		}

		if err := s.repo.DeleteLines(ctx, invoiceID); err != nil {
			return fmt.Errorf("delete lines: %w", err)
		}
		if err := s.repo.Delete(ctx, invoiceID); err != nil {
			return fmt.Errorf("delete invoice: %w", err)
		}

		return s.recordAudit(ctx, inv, audit.ActionDelete)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "invoice deleted", "id", invoiceID)
	return nil
}

// Void annuls the invoice: stock is restored and the header flagged
// inactive, but header and lines are kept for history.
func (s *Service) Void(ctx context.Context, invoiceID id.ID) error {
	inv, err := s.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if err := inv.CanVoid(); err != nil {
		return err
	}

	inv.UpdatedBy = appctx.GetUserID(ctx)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.reconciler.ApplyReverse(ctx, documents.Sale, inv.Deltas()); err != nil {
			return err
		}

		inv.MarkVoided()
		if err := s.repo.Update(ctx, inv); err != nil {
			return fmt.Errorf("void invoice: %w", err)
		}

		return s.recordAudit(ctx, inv, audit.ActionVoid)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "invoice voided", "id", invoiceID, "number", inv.Number)
	return nil
}

// List retrieves invoices with filtering and pagination.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Invoice], error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) recordAudit(ctx context.Context, inv *Invoice, action audit.Action) error {
	changes, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("marshal audit changes: %w", err)
	}
	return s.auditor.Record(ctx, audit.Entry{
		ID:         id.New(),
		EntityType: "invoice",
		EntityID:   inv.ID,
		Action:     action,
		UserID:     appctx.GetUserID(ctx),
		Changes:    changes,
		CreatedAt:  time.Now().UTC(),
	})
}
