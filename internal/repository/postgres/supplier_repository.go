// internal/repository/postgres/supplier_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
)

type supplierRepository struct {
	db *DB
}

func NewSupplierRepository(db *DB) *supplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) DefaultSupplier(ctx context.Context, itemCode string) (string, error) {
	query := `SELECT COALESCE(default_supplier, '') FROM items WHERE item_code = $1`

	var supplier string
	err := r.db.QueryRowxContext(ctx, query, itemCode).Scan(&supplier)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: default supplier: %v", domain.ErrDataSource, err)
	}

	return supplier, nil
}

func (r *supplierRepository) LastPurchaseSupplier(ctx context.Context, itemCode string) (string, error) {
	query := `
		SELECT po.supplier
		FROM purchase_orders po
		JOIN purchase_order_items poi ON poi.order_id = po.id
		WHERE poi.item_code = $1
		ORDER BY po.created_at DESC
		LIMIT 1
	`

	var supplier string
	err := r.db.QueryRowxContext(ctx, query, itemCode).Scan(&supplier)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: last purchase supplier: %v", domain.ErrDataSource, err)
	}

	return supplier, nil
}

func (r *supplierRepository) SupplierOptions(ctx context.Context, itemCode string) ([]domain.SupplierOption, error) {
	// History suppliers rank as recent-purchase options, the rest of the
	// directory as fallback-level options. Reliability labels are
	// collaborator data passed through unmodified.
	query := `
		SELECT
			s.name AS supplier,
			CASE WHEN h.supplier IS NOT NULL THEN 'recent_purchase' ELSE 'system_fallback' END AS source,
			CASE WHEN h.supplier IS NOT NULL THEN 50 ELSE 30 END AS confidence,
			COALESCE(s.reliability, '') AS reliability
		FROM suppliers s
		LEFT JOIN (
			SELECT DISTINCT po.supplier
			FROM purchase_orders po
			JOIN purchase_order_items poi ON poi.order_id = po.id
			WHERE poi.item_code = $1
		) h ON h.supplier = s.name
		WHERE s.disabled = false
		ORDER BY confidence DESC, s.name
	`

	var options []domain.SupplierOption
	if err := r.db.SelectContext(ctx, &options, query, itemCode); err != nil {
		return nil, fmt.Errorf("%w: supplier options: %v", domain.ErrDataSource, err)
	}

	return options, nil
}

func (r *supplierRepository) LastPurchaseRate(ctx context.Context, supplier, itemCode string) (decimal.Decimal, error) {
	query := `
		SELECT poi.rate
		FROM purchase_order_items poi
		JOIN purchase_orders po ON po.id = poi.order_id
		WHERE po.supplier = $1 AND poi.item_code = $2
		ORDER BY po.created_at DESC
		LIMIT 1
	`

	var rate decimal.Decimal
	err := r.db.QueryRowxContext(ctx, query, supplier, itemCode).Scan(&rate)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: last purchase rate: %v", domain.ErrDataSource, err)
	}

	return rate, nil
}
