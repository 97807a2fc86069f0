package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/sitesettle/internal/calculator"
	"github.com/mmynk/sitesettle/internal/metrics"
	"github.com/mmynk/sitesettle/internal/storage"
	"github.com/mmynk/sitesettle/internal/validation"
)

// toConnectError maps domain and storage errors to Connect codes.
// Refusals are counted by reason; anything unrecognised is internal.
func toConnectError(op string, err error) error {
	var (
		code   connect.Code
		reason string
	)
	switch {
	case errors.Is(err, validation.ErrInvalid):
		code, reason = connect.CodeInvalidArgument, "invalid_input"
	case errors.Is(err, calculator.ErrInvalidAmount):
		code, reason = connect.CodeInvalidArgument, "invalid_amount"
	case errors.Is(err, calculator.ErrOverpayment):
		code, reason = connect.CodeInvalidArgument, "overpayment"
	case errors.Is(err, calculator.ErrVendorUnsettled):
		code, reason = connect.CodeFailedPrecondition, "vendor_unsettled"
	case errors.Is(err, calculator.ErrNothingToSettle):
		code, reason = connect.CodeFailedPrecondition, "nothing_to_settle"
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		code, reason = connect.CodeAborted, "conflict"
	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}

	metrics.RecordRejection(reason)
	slog.Debug(op+" refused", "reason", reason, "error", err)
	return connect.NewError(code, err)
}
