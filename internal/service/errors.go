package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/yeongunheo/kitchenpos/internal/apperr"
	"github.com/yeongunheo/kitchenpos/pkg/api"
)

var errInternal = errors.New("internal error")

// codeForKind maps a failure category to its Connect status.
func codeForKind(kind apperr.Kind) connect.Code {
	switch kind {
	case apperr.NotFound:
		return connect.CodeNotFound
	case apperr.ValidationFailed:
		return connect.CodeInvalidArgument
	case apperr.PreconditionFailed, apperr.ConflictBlocked:
		return connect.CodeFailedPrecondition
	case apperr.ConcurrencyConflict:
		return connect.CodeAborted
	default:
		return connect.CodeInternal
	}
}

// toConnectError converts a kitchen error into a Connect error whose metadata
// carries the stable failure code. Internal failures are logged and their
// details withheld from the client.
func toConnectError(procedure string, err error) *connect.Error {
	kind := apperr.KindOf(err)
	code := apperr.CodeOf(err)

	var connectErr *connect.Error
	if kind == apperr.Internal {
		slog.Error("Internal error", "procedure", procedure, "error", err)
		connectErr = connect.NewError(connect.CodeInternal, errInternal)
	} else {
		connectErr = connect.NewError(codeForKind(kind), err)
	}
	connectErr.Meta().Set(api.ErrorCodeHeader, code)
	return connectErr
}

// parsePrice reads a decimal price string.
func parsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperr.ErrInvalidPrice.WithDetail("%q is not a decimal", s)
	}
	return price, nil
}
