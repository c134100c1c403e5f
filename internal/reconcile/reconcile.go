// Package reconcile merges a server order snapshot with a correction draft
// and computes the derived money figures. It performs no business
// validation, only merging and arithmetic, so it stays testable on its own.
package reconcile

import (
	"github.com/shopspring/decimal"

	"shipmart-be/internal/draft"
	"shipmart-be/internal/order"
)

// Merge returns the view the customer edits: the order with drafted
// deletions removed and drafted patches laid over the surviving items.
// Server item order is preserved. A nil draft yields an untouched copy.
func Merge(o *order.Order, d *draft.Draft) *order.Order {
	view := o.Clone()
	if d == nil {
		return view
	}

	items := make([]order.OrderItem, 0, len(view.Items))
	for _, item := range view.Items {
		if d.IsDeleted(item.ID) {
			continue
		}
		if patch, ok := d.Patch(item.ID); ok {
			applyPatch(&item, patch)
		}
		items = append(items, item)
	}
	view.Items = items

	return view
}

func applyPatch(item *order.OrderItem, p draft.ItemPatch) {
	if p.Color != nil {
		item.Color = *p.Color
	}
	if p.Size != nil {
		item.Size = *p.Size
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.FinalPrice != nil {
		item.FinalPrice = *p.FinalPrice
	}
}

// CurrentTotal sums final_price * quantity over the view's items.
func CurrentTotal(view *order.Order) decimal.Decimal {
	total := decimal.Zero
	for _, item := range view.Items {
		total = total.Add(item.FinalPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// PriceDelta is the difference between what the view now costs and what the
// customer already paid. Positive means an incremental payment is owed,
// negative a refund, zero no change.
func PriceDelta(view, original *order.Order) decimal.Decimal {
	return CurrentTotal(view).Sub(original.TotalPrice)
}
