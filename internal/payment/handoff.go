package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shipmart-be/internal/kv"
	"shipmart-be/internal/logger"
	"shipmart-be/internal/order"
)

const (
	paymentKeyPrefix    = "pendingPayment:"
	submissionKeyPrefix = "pendingSubmission:"
)

// Handoff is the inbox the correction session writes when a confirmed
// correction needs an incremental payment before it may be submitted.
type Handoff interface {
	// Stash parks the payment intent and the deferred submission payload.
	// Returns the intent with its generated reference id.
	Stash(ctx context.Context, o *order.Order, amount decimal.Decimal, payload *order.CorrectionSubmission) (*PendingPayment, error)

	// ConsumeIntent hands the payment intent to the payment page and
	// removes it from the inbox.
	ConsumeIntent(ctx context.Context, orderID int64) (*PendingPayment, error)
	// ConsumeSubmission hands the parked payload to the post-payment
	// submitter and removes it from the inbox.
	ConsumeSubmission(ctx context.Context, orderID int64) (*PendingSubmission, error)
}

type handoff struct {
	kv kv.Store
}

func NewHandoff(medium kv.Store) Handoff {
	return &handoff{kv: medium}
}

func paymentKey(orderID int64) string {
	return paymentKeyPrefix + strconv.FormatInt(orderID, 10)
}

func submissionKey(orderID int64) string {
	return submissionKeyPrefix + strconv.FormatInt(orderID, 10)
}

func (h *handoff) Stash(ctx context.Context, o *order.Order, amount decimal.Decimal, payload *order.CorrectionSubmission) (*PendingPayment, error) {
	intent := &PendingPayment{
		OrderID:     o.ID,
		Amount:      amount,
		Currency:    o.Currency,
		ReferenceID: uuid.New().String(),
		CreatedAt:   time.Now(),
	}

	rawIntent, err := json.Marshal(intent)
	if err != nil {
		return nil, fmt.Errorf("encode payment intent %d: %w", o.ID, err)
	}
	rawSub, err := json.Marshal(&PendingSubmission{OrderID: o.ID, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("encode pending submission %d: %w", o.ID, err)
	}

	if err := h.kv.Set(paymentKey(o.ID), string(rawIntent)); err != nil {
		return nil, fmt.Errorf("stash payment intent %d: %w", o.ID, err)
	}
	if err := h.kv.Set(submissionKey(o.ID), string(rawSub)); err != nil {
		// Do not leave a payable intent with no payload behind it.
		_ = h.kv.Delete(paymentKey(o.ID))
		return nil, fmt.Errorf("stash pending submission %d: %w", o.ID, err)
	}

	logger.FromCtx(ctx).Info("payment handoff stashed",
		zap.Int64("order_id", o.ID),
		zap.String("amount", amount.String()),
		zap.String("currency", o.Currency),
		zap.String("reference_id", intent.ReferenceID),
	)

	return intent, nil
}

func (h *handoff) ConsumeIntent(ctx context.Context, orderID int64) (*PendingPayment, error) {
	raw, ok, err := h.kv.Get(paymentKey(orderID))
	if err != nil {
		return nil, fmt.Errorf("read payment intent %d: %w", orderID, err)
	}
	if !ok {
		return nil, ErrNoPendingPayment
	}

	var intent PendingPayment
	if err := json.Unmarshal([]byte(raw), &intent); err != nil {
		return nil, fmt.Errorf("decode payment intent %d: %w", orderID, err)
	}

	if err := h.kv.Delete(paymentKey(orderID)); err != nil {
		return nil, fmt.Errorf("consume payment intent %d: %w", orderID, err)
	}
	return &intent, nil
}

func (h *handoff) ConsumeSubmission(ctx context.Context, orderID int64) (*PendingSubmission, error) {
	raw, ok, err := h.kv.Get(submissionKey(orderID))
	if err != nil {
		return nil, fmt.Errorf("read pending submission %d: %w", orderID, err)
	}
	if !ok {
		return nil, ErrNoPendingSubmission
	}

	var sub PendingSubmission
	if err := json.Unmarshal([]byte(raw), &sub); err != nil {
		return nil, fmt.Errorf("decode pending submission %d: %w", orderID, err)
	}

	if err := h.kv.Delete(submissionKey(orderID)); err != nil {
		return nil, fmt.Errorf("consume pending submission %d: %w", orderID, err)
	}
	return &sub, nil
}
