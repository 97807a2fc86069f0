package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/sitesettle/internal/models"
)

// ApplyPayment returns a copy of s with amount added to its paid amount.
// The last payment may overshoot the total by at most models.Tolerance; the
// paid amount is then capped at the total. A settled settlement accepts no
// further payments.
func ApplyPayment(s models.Settlement, amount decimal.Decimal) (models.Settlement, error) {
	if !amount.IsPositive() {
		return s, fmt.Errorf("%w: got %s", ErrInvalidAmount, amount.String())
	}
	if PaymentStateOf(s) == models.PaymentSettled {
		return s, fmt.Errorf("%w: settlement %s is already settled", ErrOverpayment, s.ID)
	}

	paid := s.PaidAmount.Add(amount)
	if paid.GreaterThan(s.TotalAmount.Add(models.Tolerance)) {
		return s, fmt.Errorf("%w: paying %s on %s with %s remaining",
			ErrOverpayment, amount.StringFixed(2), s.ID, Remaining(s).StringFixed(2))
	}
	paid = decimal.Min(paid, s.TotalAmount)

	updated := s
	updated.PaidAmount = paid
	updated.MaterialIDs = append([]string(nil), s.MaterialIDs...)
	return updated, nil
}

// Remaining is what is still to be paid on s, never negative.
func Remaining(s models.Settlement) decimal.Decimal {
	left := s.TotalAmount.Sub(s.PaidAmount)
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}

// PaymentStateOf derives the payment progress of s.
func PaymentStateOf(s models.Settlement) models.PaymentState {
	switch {
	case s.PaidAmount.GreaterThanOrEqual(s.TotalAmount.Sub(models.Tolerance)):
		return models.PaymentSettled
	case s.PaidAmount.IsZero():
		return models.PaymentPending
	default:
		return models.PaymentPartiallyPaid
	}
}
