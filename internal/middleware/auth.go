// Package middleware provides the Connect interceptors shared by every
// service: staff authentication, request logging and RPC metrics.
package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/yeongunheo/kitchenpos/internal/auth"
)

// Staff is the authenticated caller of a kitchen RPC.
type Staff struct {
	UserID string
	Email  string
}

type staffKey struct{}

// WithStaff returns a context carrying staff.
func WithStaff(ctx context.Context, staff Staff) context.Context {
	return context.WithValue(ctx, staffKey{}, staff)
}

// StaffFromContext returns the caller stored by RequireAuth.
func StaffFromContext(ctx context.Context) (Staff, bool) {
	staff, ok := ctx.Value(staffKey{}).(Staff)
	return staff, ok
}

// GetUserID returns the caller's user ID, or "" before authentication.
func GetUserID(ctx context.Context) string {
	staff, _ := StaffFromContext(ctx)
	return staff.UserID
}

// RequireAuth rejects calls without a valid "Authorization: Bearer <jwt>"
// header and stores the caller in the context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			scheme, tokenString, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithStaff(ctx, Staff{UserID: claims.UserID(), Email: claims.Email}), req)
		}
	}
}
