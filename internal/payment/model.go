package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"shipmart-be/internal/order"
)

// PendingPayment is the intent the payment page consumes before collecting
// an incremental amount for a corrected order.
type PendingPayment struct {
	OrderID     int64           `json:"orderId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	ReferenceID string          `json:"referenceId"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// PendingSubmission is the correction payload parked until payment
// completes; the post-payment step replays it against the order service.
type PendingSubmission struct {
	OrderID int64                       `json:"orderId"`
	Payload *order.CorrectionSubmission `json:"payload"`
}
