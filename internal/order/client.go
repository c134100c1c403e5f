package order

import "context"

// Client is the order-data collaborator consumed by the correction session.
type Client interface {
	GetOrderForCorrection(ctx context.Context, orderID int64) (*Order, error)
	SubmitCorrection(ctx context.Context, orderID int64, sub *CorrectionSubmission) error
}
