// internal/repository/postgres/order_repository.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
)

type orderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *orderRepository {
	return &orderRepository{db: db}
}

// CreateOrder materializes one order draft inside its own transaction, so a
// failure here never affects sibling groups of the same commit.
func (r *orderRepository) CreateOrder(ctx context.Context, draft domain.OrderDraft) (string, error) {
	if len(draft.Lines) == 0 {
		return "", fmt.Errorf("order draft for %q has no lines", draft.Supplier)
	}

	id := fmt.Sprintf("PO-%s", uuid.NewString())
	status := "Draft"
	if draft.Submit {
		status = "Submitted"
	}

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO purchase_orders (id, company, supplier, status, total_amount, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := tx.ExecContext(ctx, query,
			id, draft.Company, draft.Supplier, status, draft.Amount, time.Now(),
		); err != nil {
			return fmt.Errorf("insert purchase order: %w", err)
		}

		lineQuery := `
			INSERT INTO purchase_order_items (order_id, item_code, item_name, qty, rate, amount)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		stmt, err := tx.PrepareContext(ctx, lineQuery)
		if err != nil {
			return fmt.Errorf("prepare order line insert: %w", err)
		}
		defer stmt.Close()

		for _, line := range draft.Lines {
			if _, err := stmt.ExecContext(ctx,
				id, line.ItemCode, line.ItemName, line.Qty, line.Rate, line.Amount,
			); err != nil {
				return fmt.Errorf("insert order line %s: %w", line.ItemCode, err)
			}
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return id, nil
}
