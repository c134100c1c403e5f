package payment

import "errors"

var (
	ErrNoPendingPayment    = errors.New("no pending payment for order")
	ErrNoPendingSubmission = errors.New("no pending submission for order")
)
