package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPendingReview       Status = "PENDING_REVIEW"
	StatusPartiallyRejected   Status = "PARTIALLY_REJECTED"
	StatusPendingReevaluation Status = "PENDING_REEVALUATION"
	StatusCompleted           Status = "COMPLETED"
	StatusCanceled            Status = "CANCELED"
)

type ItemStatus string

const (
	ItemStatusPending  ItemStatus = "PENDING"
	ItemStatusAccepted ItemStatus = "ACCEPTED"
	ItemStatusDenied   ItemStatus = "DENIED"
)

// SourceType distinguishes items curated by the back office from items the
// customer added themselves.
type SourceType string

const (
	SourceAdminCurated SourceType = "ADMIN_CURATED"
	SourceUserAdded    SourceType = "USER_ADDED"
)

type DenyReason string

const (
	DenyPriceMismatch       DenyReason = "PRICE_MISMATCH"
	DenyOutOfStock          DenyReason = "OUT_OF_STOCK"
	DenyBrokenProductLink   DenyReason = "BROKEN_PRODUCT_LINK"
	DenyDisallowedCategory  DenyReason = "DISALLOWED_CATEGORY"
	DenyQuantityUnavailable DenyReason = "QUANTITY_UNAVAILABLE"
)

type Order struct {
	ID         int64
	UserID     int64
	Status     Status
	Currency   string
	TotalPrice decimal.Decimal // amount the customer already paid
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Items      []OrderItem
}

type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductName string
	ProductLink string
	Color       string
	Size        string
	Quantity    int
	Price       decimal.Decimal // unit price originally charged, immutable
	FinalPrice  decimal.Decimal // corrected unit price
	Status      ItemStatus
	SourceType  SourceType
	DenyReasons []DenyReason
}

// Accepted items are immutable for the rest of a correction session: they
// were admin-curated and carry no deny reason.
func (i *OrderItem) Accepted() bool {
	return i.SourceType != SourceUserAdded && len(i.DenyReasons) == 0
}

func (i *OrderItem) HasDenyReason(r DenyReason) bool {
	for _, dr := range i.DenyReasons {
		if dr == r {
			return true
		}
	}
	return false
}

// Clone deep-copies the order so a working copy can be mutated without
// touching the server snapshot.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = make([]OrderItem, len(o.Items))
	for idx, item := range o.Items {
		ci := item
		ci.DenyReasons = append([]DenyReason(nil), item.DenyReasons...)
		c.Items[idx] = ci
	}
	return &c
}

// Item returns a pointer into o.Items for the given item id.
func (o *Order) Item(itemID int64) (*OrderItem, bool) {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx], true
		}
	}
	return nil, false
}

// CorrectionSubmission is the payload a resubmitted correction sends back to
// the order service. Every surviving item is reset to pending with its deny
// reasons cleared so the back office evaluates the order from scratch.
type CorrectionSubmission struct {
	OrderID     int64            `json:"orderId"`
	Status      Status           `json:"status"`
	TotalPrice  decimal.Decimal  `json:"totalPrice"`
	PlatformFee decimal.Decimal  `json:"platformFee"`
	Items       []CorrectionItem `json:"items"`
}

type CorrectionItem struct {
	ID         int64           `json:"id"`
	Color      string          `json:"color"`
	Size       string          `json:"size"`
	Quantity   int             `json:"quantity"`
	FinalPrice decimal.Decimal `json:"finalPrice"`
	Status     ItemStatus      `json:"status"`
}
