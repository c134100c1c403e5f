package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipmart-be/internal/draft"
	"shipmart-be/internal/order"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func decPtr(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

// twoItemOrder mirrors the canonical correction case: item 1 accepted, item 2
// denied for a price mismatch, 2000 already paid.
func twoItemOrder() *order.Order {
	return &order.Order{
		ID:         7,
		Currency:   "MYR",
		TotalPrice: decimal.NewFromInt(2000),
		Items: []order.OrderItem{
			{
				ID: 1, ProductName: "Canvas Tote", Quantity: 1,
				Price: decimal.NewFromInt(1000), FinalPrice: decimal.NewFromInt(1000),
				Status: order.ItemStatusAccepted, SourceType: order.SourceAdminCurated,
			},
			{
				ID: 2, ProductName: "Rain Jacket", Quantity: 2,
				Price: decimal.NewFromInt(500), FinalPrice: decimal.NewFromInt(500),
				Status: order.ItemStatusDenied, SourceType: order.SourceAdminCurated,
				DenyReasons: []order.DenyReason{order.DenyPriceMismatch},
			},
		},
	}
}

func TestMerge_NilDraftReturnsCopy(t *testing.T) {
	o := twoItemOrder()
	view := Merge(o, nil)

	assert.Equal(t, o, view)

	view.Items[0].Quantity = 99
	assert.Equal(t, 1, o.Items[0].Quantity, "merge must not alias the snapshot")
}

func TestMerge_DeletedItemsNeverSurface(t *testing.T) {
	d := draft.New()
	d.DeletedIDs = []int64{2}

	view := Merge(twoItemOrder(), d)
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(1), view.Items[0].ID)
}

func TestMerge_PatchAppliedShallow(t *testing.T) {
	d := draft.New()
	d.Edits[2] = draft.ItemPatch{
		Color:      strPtr("forest"),
		Quantity:   intPtr(3),
		FinalPrice: decPtr(600),
	}

	view := Merge(twoItemOrder(), d)
	require.Len(t, view.Items, 2)

	patched := view.Items[1]
	assert.Equal(t, "forest", patched.Color)
	assert.Equal(t, 3, patched.Quantity)
	assert.True(t, patched.FinalPrice.Equal(decimal.NewFromInt(600)))
	// Untouched fields keep their server values.
	assert.Equal(t, "Rain Jacket", patched.ProductName)
	assert.True(t, patched.Price.Equal(decimal.NewFromInt(500)))
}

func TestMerge_PreservesServerOrder(t *testing.T) {
	d := draft.New()
	d.Edits[1] = draft.ItemPatch{Size: strPtr("S")}

	view := Merge(twoItemOrder(), d)
	require.Len(t, view.Items, 2)
	assert.Equal(t, int64(1), view.Items[0].ID)
	assert.Equal(t, int64(2), view.Items[1].ID)
}

func TestCurrentTotal_EmptyIsZero(t *testing.T) {
	total := CurrentTotal(&order.Order{})
	assert.True(t, total.IsZero())
}

func TestCurrentTotal_InvariantUnderReordering(t *testing.T) {
	o := twoItemOrder()
	forward := CurrentTotal(o)

	o.Items[0], o.Items[1] = o.Items[1], o.Items[0]
	backward := CurrentTotal(o)

	assert.True(t, forward.Equal(backward))
	assert.True(t, forward.Equal(decimal.NewFromInt(2000)))
}

func TestPriceDelta_EditRaisesTotal(t *testing.T) {
	o := twoItemOrder()
	d := draft.New()
	d.Edits[2] = draft.ItemPatch{FinalPrice: decPtr(600)}

	view := Merge(o, d)
	total := CurrentTotal(view)
	delta := PriceDelta(view, o)

	assert.True(t, total.Equal(decimal.NewFromInt(2200)))
	assert.True(t, delta.Equal(decimal.NewFromInt(200)))
}

func TestPriceDelta_DeleteLowersTotal(t *testing.T) {
	o := twoItemOrder()
	d := draft.New()
	d.DeletedIDs = []int64{2}

	view := Merge(o, d)
	delta := PriceDelta(view, o)

	assert.True(t, CurrentTotal(view).Equal(decimal.NewFromInt(1000)))
	assert.True(t, delta.Equal(decimal.NewFromInt(-1000)))
}

func TestPriceDelta_NoChangesIsZero(t *testing.T) {
	o := twoItemOrder()
	view := Merge(o, draft.New())
	assert.True(t, PriceDelta(view, o).IsZero())
}

func TestCurrentTotal_ExactFractionalArithmetic(t *testing.T) {
	price, err := decimal.NewFromString("0.10")
	require.NoError(t, err)

	o := &order.Order{Items: []order.OrderItem{
		{ID: 1, Quantity: 3, FinalPrice: price},
	}}

	want, err := decimal.NewFromString("0.30")
	require.NoError(t, err)
	assert.True(t, CurrentTotal(o).Equal(want))
}
