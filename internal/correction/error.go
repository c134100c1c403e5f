package correction

import "errors"

var (
	// -- Session lifecycle --
	ErrNotEditing      = errors.New("correction session is not editable")
	ErrConfirmInFlight = errors.New("confirmation already in progress")

	// -- Validation (local, non-fatal) --
	ErrItemNotFound        = errors.New("item not found in order")
	ErrItemAccepted        = errors.New("accepted items cannot be changed or removed")
	ErrPriceNotDisputed    = errors.New("final price is only editable for items denied over a price mismatch")
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
	ErrEmptyPatch          = errors.New("no fields to edit")
	ErrRemovalNotConfirmed = errors.New("item removal requires confirmation")
	ErrNoItemsLeft         = errors.New("at least one item required")

	// -- Recoverable --
	ErrSubmissionFailed = errors.New("correction submission failed")
)

// IsValidation reports whether err is a local validation failure: the
// session stays editable and nothing was mutated.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrItemNotFound, ErrItemAccepted, ErrPriceNotDisputed,
		ErrInvalidQuantity, ErrEmptyPatch, ErrRemovalNotConfirmed,
		ErrNoItemsLeft,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
