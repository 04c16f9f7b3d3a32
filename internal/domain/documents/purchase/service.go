package purchase

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

// Service provides business operations for purchases.
type Service struct {
	repo       Repository
	products   documents.ProductLookup
	costs      documents.CostUpdater
	reconciler *documents.Reconciler
	numerator  *numerator.Service
	txManager  tx.Manager
	auditor    audit.Recorder
}

// NewService creates a purchase service.
func NewService(
	repo Repository,
	products documents.ProductLookup,
	costs documents.CostUpdater,
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
		costs:      costs,
		reconciler: reconciler,
		numerator:  num,
		txManager:  txManager,
		auditor:    auditor,
	}
}

// buildLines prices the submitted line items. UnitPrice on the input is
// read as the unit cost quoted by the supplier; tax still follows the
// product's tax rate.
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
			UnitCost:  in.UnitPrice,
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

// Create prices the lines, persists header and lines, increments stock and
// records each line's unit cost as the product's current cost, all in one
// transaction.
func (s *Service) Create(ctx context.Context, p *Purchase, inputs []documents.LineInput) error {
	if len(inputs) == 0 {
		return apperror.NewValidation("purchase must have at least one line").
			WithDetail("field", "lines")
	}

	p.CreatedBy = appctx.GetUserID(ctx)
	p.UpdatedBy = p.CreatedBy

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		lines, err := s.buildLines(ctx, inputs)
		if err != nil {
			return err
		}
		p.Lines = lines
		p.SetTotals(sumTotals(lines))

		if err := p.Validate(ctx); err != nil {
			return err
		}

		if p.Number == "" {
			number, err := s.numerator.Next(ctx, "COM", time.Now())
			if err != nil {
				return fmt.Errorf("generate number: %w", err)
			}
			p.Number = number
		}

		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}
		if err := s.repo.SaveLines(ctx, p.ID, p.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		if err := s.reconciler.ApplyCreate(ctx, documents.Purchase, p.Deltas()); err != nil {
			return err
		}
		if err := s.propagateCosts(ctx, p.Lines); err != nil {
			return err
		}

		return s.recordAudit(ctx, p, audit.ActionCreate)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "purchase created",
		"id", p.ID,
		"number", p.Number,
		"total", p.Total)
	return nil
}

// propagateCosts writes each line's unit cost onto the product. The last
// line wins when a product repeats.
func (s *Service) propagateCosts(ctx context.Context, lines []Line) error {
	for _, l := range lines {
		if err := s.costs.UpdateCost(ctx, l.ProductID, l.UnitCost); err != nil {
			return fmt.Errorf("update product cost: %w", err)
		}
	}
	return nil
}

// GetByID retrieves a purchase with its lines.
func (s *Service) GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error) {
	p, err := s.repo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	p.Lines = lines

	return p, nil
}

// Update replaces the purchase's lines and header fields. The stock effect
// of the old lines is reversed and the new one applied as a single netted
// mutation; product costs follow the new lines.
func (s *Service) Update(ctx context.Context, p *Purchase, inputs []documents.LineInput) error {
	if len(inputs) == 0 {
		return apperror.NewValidation("purchase must have at least one line").
			WithDetail("field", "lines")
	}

	existing, err := s.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing.IsVoided() {
		return apperror.NewConflict("cannot modify a voided purchase").
			WithDetail("purchase_id", p.ID.String())
	}

	p.UpdatedBy = appctx.GetUserID(ctx)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		lines, err := s.buildLines(ctx, inputs)
		if err != nil {
			return err
		}
		p.Lines = lines
		p.SetTotals(sumTotals(lines))

		if err := p.Validate(ctx); err != nil {
			return err
		}

		if err := s.reconciler.ApplyReplace(ctx, documents.Purchase, existing.Deltas(), p.Deltas()); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, p); err != nil {
			return fmt.Errorf("update purchase: %w", err)
		}
		if err := s.repo.SaveLines(ctx, p.ID, p.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		if err := s.propagateCosts(ctx, p.Lines); err != nil {
			return err
		}

		return s.recordAudit(ctx, p, audit.ActionUpdate)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "purchase updated", "id", p.ID, "number", p.Number)
	return nil
}

// Delete removes the purchase and its lines, taking the received stock back
// out. A line whose stock was already sold on makes the removal fail rather
// than drive the balance negative. Voided purchases were already reversed,
// so only the rows are removed.
func (s *Service) Delete(ctx context.Context, purchaseID id.ID) error {
	p, err := s.GetByID(ctx, purchaseID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if !p.IsVoided() {
			if err := s.reconciler.ApplyReverse(ctx, documents.Purchase, p.Deltas()); err != nil {
				return err
			}
		}

		if err := s.repo.DeleteLines(ctx, purchaseID); err != nil {
			return fmt.Errorf("delete lines: %w", err)
		}
		if err := s.repo.Delete(ctx, purchaseID); err != nil {
			return fmt.Errorf("delete purchase: %w", err)
		}

		return s.recordAudit(ctx, p, audit.ActionDelete)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "purchase deleted", "id", purchaseID)
	return nil
}

// Void annuls the purchase: the received stock is taken back out and the
// header flagged inactive, keeping header and lines for history.
func (s *Service) Void(ctx context.Context, purchaseID id.ID) error {
	p, err := s.GetByID(ctx, purchaseID)
	if err != nil {
		return err
	}
	if err := p.CanVoid(); err != nil {
		return err
	}

	p.UpdatedBy = appctx.GetUserID(ctx)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.reconciler.ApplyReverse(ctx, documents.Purchase, p.Deltas()); err != nil {
			return err
		}

		p.MarkVoided()
		if err := s.repo.Update(ctx, p); err != nil {
			return fmt.Errorf("void purchase: %w", err)
		}

		return s.recordAudit(ctx, p, audit.ActionVoid)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "purchase voided", "id", purchaseID, "number", p.Number)
	return nil
}

// List retrieves purchases with filtering and pagination.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Purchase], error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) recordAudit(ctx context.Context, p *Purchase, action audit.Action) error {
	changes, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal audit changes: %w", err)
	}
	return s.auditor.Record(ctx, audit.Entry{
		ID:         id.New(),
		EntityType: "purchase",
		EntityID:   p.ID,
		Action:     action,
		UserID:     appctx.GetUserID(ctx),
		Changes:    changes,
		CreatedAt:  time.Now().UTC(),
	})
}
