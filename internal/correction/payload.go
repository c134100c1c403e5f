package correction

import (
	"github.com/shopspring/decimal"

	"shipmart-be/internal/order"
)

// buildSubmission shapes the resubmission payload: the order goes back to
// pending re-evaluation with a recomputed total and platform fee, every
// surviving item is reset to pending with its deny reasons cleared.
func buildSubmission(view *order.Order, total, feeRate decimal.Decimal) *order.CorrectionSubmission {
	items := make([]order.CorrectionItem, 0, len(view.Items))
	for _, it := range view.Items {
		items = append(items, order.CorrectionItem{
			ID:         it.ID,
			Color:      it.Color,
			Size:       it.Size,
			Quantity:   it.Quantity,
			FinalPrice: it.FinalPrice,
			Status:     order.ItemStatusPending,
		})
	}

	return &order.CorrectionSubmission{
		OrderID:     view.ID,
		Status:      order.StatusPendingReevaluation,
		TotalPrice:  total,
		PlatformFee: total.Mul(feeRate).Round(2),
		Items:       items,
	}
}
