package usecase

import (
	"context"

	"canopus/internal/domain/entity"
)

// SessionUsecase holds the current authenticated identity. It is the
// only component that mutates the credential holder the API client
// reads its token from, and it is independent of all entity stores.
type SessionUsecase interface {
	// Restore loads a persisted session at startup. No network call;
	// idempotent. Returns (nil, nil) when nothing usable is persisted.
	Restore(ctx context.Context) (*entity.Session, error)

	// Login authenticates against the backend, persists the returned
	// session and primes the bearer token.
	Login(ctx context.Context, email, password string) (*entity.User, error)

	// Logout clears memory, persisted storage and the bearer token.
	// Side-effect only; always succeeds apart from storage errors.
	Logout(ctx context.Context) error

	// CurrentUser returns the logged-in user, or nil.
	CurrentUser() *entity.User

	// UpdateCurrentUser submits a partial update for the session's own
	// user and replaces the held user with the canonical response.
	UpdateCurrentUser(ctx context.Context, input UpdateUserInput) (*entity.User, error)

	// UpdateNotifications updates the current user's notification
	// preferences.
	UpdateNotifications(ctx context.Context, prefs entity.Notifications) (entity.Notifications, error)

	// ForgotPassword starts the password-recovery flow.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword completes recovery with an emailed token.
	ResetPassword(ctx context.Context, token, password string) error

	// SetPassword sets the initial password from an invitation token.
	SetPassword(ctx context.Context, token, password string) error
}

// UpdateUserInput is a partial user update; nil fields are omitted from
// the request.
type UpdateUserInput struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	ProfilePic *string `json:"profilePic,omitempty"`
	Password   *string `json:"password,omitempty" validate:"omitempty,min=6"`
}
