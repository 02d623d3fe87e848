// Package auth handles staff accounts: password registration and login, and
// the JWT sessions that front-of-house clients present on every kitchen RPC.
package auth

import (
	"context"

	"github.com/yeongunheo/kitchenpos/internal/models"
)

var _ Authenticator = (*PasswordAuthenticator)(nil)

// Authenticator registers and authenticates staff accounts.
type Authenticator interface {
	// Register creates a staff account. It returns ErrEmailExists when the
	// email is taken and the ValidateCredential error for a weak credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the account matching email and credential, or
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential reports whether credential is acceptable for a new
	// account.
	ValidateCredential(credential string) error
}
