// Package stock_repo implements stock balance access against the products
// table.
package stock_repo

import (
	"context"
	"fmt"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/documents"
	"backoffice/internal/infrastructure/storage/postgres"
)

// StockRepo reads and adjusts per-product stock balances. Balance reads
// take a row lock, so concurrent documents touching the same product
// serialize on it instead of racing.
type StockRepo struct {
	txManager *postgres.TxManager
}

var (
	_ documents.StockPort   = (*StockRepo)(nil)
	_ documents.CostUpdater = (*StockRepo)(nil)
)

// NewStockRepo creates a stock repository.
func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{txManager: txManager}
}

// GetStockForUpdate reads a product's stock balance under FOR UPDATE.
// Must be called inside a transaction.
func (r *StockRepo) GetStockForUpdate(ctx context.Context, productID id.ID) (types.Quantity, error) {
	querier := r.txManager.GetQuerier(ctx)

	var stock types.Quantity
	err := querier.QueryRow(ctx,
		"SELECT stock FROM products WHERE id = $1 FOR UPDATE",
		productID,
	).Scan(&stock)
	if err != nil {
		if postgres.IsNoRows(err) {
			return stock, apperror.NewNotFound("product", productID.String())
		}
		return stock, fmt.Errorf("get stock for update: %w", err)
	}

	return stock, nil
}

// AdjustStock applies a signed delta to a product's stock balance.
func (r *StockRepo) AdjustStock(ctx context.Context, productID id.ID, delta types.Quantity) error {
	querier := r.txManager.GetQuerier(ctx)

	tag, err := querier.Exec(ctx,
		"UPDATE products SET stock = stock + $2, updated_at = NOW() WHERE id = $1",
		productID, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID.String())
	}

	return nil
}

// UpdateCost records the latest purchase cost on the product.
func (r *StockRepo) UpdateCost(ctx context.Context, productID id.ID, cost types.Money) error {
	querier := r.txManager.GetQuerier(ctx)

	tag, err := querier.Exec(ctx,
		"UPDATE products SET cost = $2, updated_at = NOW() WHERE id = $1",
		productID, cost,
	)
	if err != nil {
		return fmt.Errorf("update cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID.String())
	}

	return nil
}
