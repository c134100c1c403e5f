package draft

import (
	"github.com/shopspring/decimal"
)

// ItemPatch is a partial override of one order item's editable fields. Nil
// means the field is untouched.
type ItemPatch struct {
	Color      *string          `json:"color,omitempty"`
	Size       *string          `json:"size,omitempty"`
	Quantity   *int             `json:"quantity,omitempty"`
	FinalPrice *decimal.Decimal `json:"finalPrice,omitempty"`
}

func (p ItemPatch) IsZero() bool {
	return p.Color == nil && p.Size == nil && p.Quantity == nil && p.FinalPrice == nil
}

// merge lays other's set fields over p.
func (p ItemPatch) merge(other ItemPatch) ItemPatch {
	if other.Color != nil {
		p.Color = other.Color
	}
	if other.Size != nil {
		p.Size = other.Size
	}
	if other.Quantity != nil {
		p.Quantity = other.Quantity
	}
	if other.FinalPrice != nil {
		p.FinalPrice = other.FinalPrice
	}
	return p
}

// Draft holds one order's unconfirmed correction state. An item id never
// appears in both Edits and DeletedIDs: editing un-deletes, deleting drops
// the edit.
type Draft struct {
	Edits      map[int64]ItemPatch `json:"edits"`
	DeletedIDs []int64             `json:"deletedIds"`
}

func New() *Draft {
	return &Draft{Edits: make(map[int64]ItemPatch)}
}

// Empty reports whether the draft carries no unconfirmed changes.
func (d *Draft) Empty() bool {
	return d == nil || (len(d.Edits) == 0 && len(d.DeletedIDs) == 0)
}

func (d *Draft) IsDeleted(itemID int64) bool {
	if d == nil {
		return false
	}
	for _, id := range d.DeletedIDs {
		if id == itemID {
			return true
		}
	}
	return false
}

func (d *Draft) undelete(itemID int64) {
	for idx, id := range d.DeletedIDs {
		if id == itemID {
			d.DeletedIDs = append(d.DeletedIDs[:idx], d.DeletedIDs[idx+1:]...)
			return
		}
	}
}

// Patch returns the pending edit for an item, if any.
func (d *Draft) Patch(itemID int64) (ItemPatch, bool) {
	if d == nil || d.Edits == nil {
		return ItemPatch{}, false
	}
	p, ok := d.Edits[itemID]
	return p, ok
}
