package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"shipmart-be/internal/logger"
)

// Repository is the postgres-backed realization of the Client collaborator.
type Repository interface {
	Client
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrderForCorrection(ctx context.Context, orderID int64) (*Order, error) {
	query := `
		SELECT id, user_id, status, currency, total_price, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var o Order
	var totalPrice string
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&o.ID, &o.UserID, &o.Status, &o.Currency, &totalPrice, &o.CreatedAt, &o.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", orderID, err)
	}
	if err := o.TotalPrice.Scan(totalPrice); err != nil {
		return nil, fmt.Errorf("get order %d: parse total_price: %w", orderID, err)
	}

	items, err := r.fetchItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

func (r *repository) fetchItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	query := `
		SELECT id, order_id, product_name, product_link, color, size,
		       quantity, price, final_price, status, source_type, deny_reasons
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order %d items: %w", orderID, err)
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		var price, finalPrice string
		var reasons pq.StringArray
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductName, &it.ProductLink,
			&it.Color, &it.Size, &it.Quantity, &price, &finalPrice,
			&it.Status, &it.SourceType, &reasons,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if err := it.Price.Scan(price); err != nil {
			return nil, fmt.Errorf("parse item %d price: %w", it.ID, err)
		}
		if err := it.FinalPrice.Scan(finalPrice); err != nil {
			return nil, fmt.Errorf("parse item %d final_price: %w", it.ID, err)
		}
		for _, rc := range reasons {
			it.DenyReasons = append(it.DenyReasons, DenyReason(rc))
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

// SubmitCorrection replaces the order's correctable state in one transaction:
// order-level status and totals, surviving items updated and reset to
// pending, removed items deleted.
func (r *repository) SubmitCorrection(ctx context.Context, orderID int64, sub *CorrectionSubmission) error {
	if sub == nil || len(sub.Items) == 0 {
		return ErrEmptySubmission
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "SubmitCorrection"),
		zap.Int64("order_id", orderID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("submit correction %d: begin tx: %w", orderID, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, total_price = $2, platform_fee = $3, updated_at = NOW()
		WHERE id = $4
	`, sub.Status, sub.TotalPrice.String(), sub.PlatformFee.String(), orderID)
	if err != nil {
		return fmt.Errorf("submit correction %d: update order: %w", orderID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrOrderNotFound
	}

	keep := make([]int64, 0, len(sub.Items))
	for _, item := range sub.Items {
		keep = append(keep, item.ID)
		_, err := tx.ExecContext(ctx, `
			UPDATE order_items
			SET color = $1, size = $2, quantity = $3, final_price = $4,
			    status = $5, deny_reasons = '{}'
			WHERE id = $6 AND order_id = $7
		`, item.Color, item.Size, item.Quantity, item.FinalPrice.String(),
			item.Status, item.ID, orderID)
		if err != nil {
			return fmt.Errorf("submit correction %d: update item %d: %w", orderID, item.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM order_items
		WHERE order_id = $1 AND NOT (id = ANY($2))
	`, orderID, pq.Array(keep))
	if err != nil {
		return fmt.Errorf("submit correction %d: delete removed items: %w", orderID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("submit correction %d: commit: %w", orderID, err)
	}

	log.Info("correction submitted",
		zap.Int("item_count", len(sub.Items)),
		zap.String("total_price", sub.TotalPrice.String()),
	)

	return nil
}
