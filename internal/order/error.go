package order

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptySubmission = errors.New("correction submission has no items")
)
