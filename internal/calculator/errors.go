package calculator

import "errors"

var (
	// ErrVendorUnsettled is returned when a selection includes material the
	// creditor site has not yet paid its vendor for.
	ErrVendorUnsettled = errors.New("vendor not yet paid for selected material")

	// ErrNothingToSettle is returned when a selection is empty or sums to zero.
	ErrNothingToSettle = errors.New("nothing to settle")

	// ErrInvalidAmount is returned for non-positive payment amounts.
	ErrInvalidAmount = errors.New("payment amount must be positive")

	// ErrOverpayment is returned when a payment exceeds what is left to pay.
	ErrOverpayment = errors.New("payment exceeds remaining balance")
)
