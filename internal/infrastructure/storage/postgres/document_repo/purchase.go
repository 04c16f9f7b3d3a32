package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"backoffice/internal/core/id"
	"backoffice/internal/domain/documents/purchase"
	"backoffice/internal/infrastructure/storage/postgres"
)

const purchaseLinesTable = "purchase_lines"

// PurchaseRepo is the PostgreSQL repository for purchases.
type PurchaseRepo struct {
	*BaseDocumentRepo[*purchase.Purchase]
	txManager *postgres.TxManager
}

var _ purchase.Repository = (*PurchaseRepo)(nil)

// NewPurchaseRepo creates a purchase repository.
func NewPurchaseRepo(txManager *postgres.TxManager) *PurchaseRepo {
	repo := &PurchaseRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			"purchases",
			func() *purchase.Purchase { return &purchase.Purchase{} },
		),
		txManager: txManager,
	}
	repo.SearchWith(func(term string) squirrel.Sqlizer {
		pattern := "%" + term + "%"
		return squirrel.Or{
			squirrel.ILike{"number": pattern},
			squirrel.Expr(
				"supplier_id IN (SELECT id FROM suppliers WHERE name ILIKE ?)",
				pattern,
			),
		}
	})
	return repo
}

// GetLines retrieves the purchase's lines ordered by line number.
func (r *PurchaseRepo) GetLines(ctx context.Context, docID id.ID) ([]purchase.Line, error) {
	q := r.Builder().
		Select(
			"line_id", "line_no", "product_id",
			"quantity", "unit_cost", "subtotal", "tax",
		).
		From(purchaseLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	lines := make([]purchase.Line, 0)
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines replaces the purchase's lines (delete existing + insert new).
func (r *PurchaseRepo) SaveLines(ctx context.Context, docID id.ID, lines []purchase.Line) error {
	querier := r.txManager.GetQuerier(ctx)

	deleteSQL := "DELETE FROM " + purchaseLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(purchaseLinesTable).
		Columns(
			"line_id", "document_id", "line_no", "product_id",
			"quantity", "unit_cost", "subtotal", "tax",
		)
	for _, line := range lines {
		q = q.Values(
			line.LineID, docID, line.LineNo, line.ProductID,
			line.Quantity, line.UnitCost, line.Subtotal, line.Tax,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// DeleteLines removes all of the purchase's lines.
func (r *PurchaseRepo) DeleteLines(ctx context.Context, docID id.ID) error {
	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, "DELETE FROM "+purchaseLinesTable+" WHERE document_id = $1", docID); err != nil {
		return fmt.Errorf("delete lines: %w", err)
	}
	return nil
}
