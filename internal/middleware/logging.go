package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/yeongunheo/kitchenpos/pkg/api"
)

// LoggingInterceptor logs one line per RPC. Client-caused failures log at
// Warn with their stable error code, internal ones at Error. A nil logger
// means slog.Default.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"user_id", GetUserID(ctx), // empty unless RequireAuth runs first
				"duration_ms", time.Since(start).Milliseconds(),
			}

			var connectErr *connect.Error
			switch {
			case err == nil:
				logger.InfoContext(ctx, "RPC ok", attrs...)
			case errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal:
				attrs = append(attrs,
					"code", connectErr.Code(),
					"error_code", connectErr.Meta().Get(api.ErrorCodeHeader),
					"error", connectErr.Message(),
				)
				logger.WarnContext(ctx, "RPC error", attrs...)
			default:
				logger.ErrorContext(ctx, "RPC error", append(attrs, "error", err)...)
			}

			return resp, err
		}
	}
}
