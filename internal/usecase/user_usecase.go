package usecase

import (
	"context"

	"canopus/internal/domain/entity"
)

// UserUsecase mirrors the staff roster (users with their completed-work
// counts) and mediates user administration.
type UserUsecase interface {
	// Fetch replaces the roster with the server's current list.
	Fetch(ctx context.Context) ([]entity.User, error)

	// Users returns a snapshot copy of the roster.
	Users() []entity.User

	// State returns the store lifecycle state.
	State() State

	// FetchWithWork loads one user together with their work history.
	// The result bypasses the roster; it is not merged into it.
	FetchWithWork(ctx context.Context, id string) (*UserWorkDetail, error)

	// Create validates input locally, posts it, and appends the
	// canonical user returned by the server.
	Create(ctx context.Context, input CreateUserInput) (*entity.User, error)

	// Update sends partial fields and replaces the matching roster
	// entry with the canonical response.
	Update(ctx context.Context, id string, input UpdateUserInput) (*entity.User, error)

	// UpdateRole is a restricted single-field role update.
	UpdateRole(ctx context.Context, id string, role entity.Role) (*entity.User, error)

	// Remove deletes the user. Removing the session's own user also
	// destroys the session.
	Remove(ctx context.Context, id string) error
}

// CreateUserInput is the client-side contract for a new user. The
// backend mails an invitation; the password is set through the
// set-password flow, not here.
type CreateUserInput struct {
	Name       string      `json:"name" validate:"required"`
	Email      string      `json:"email" validate:"required,email"`
	Role       entity.Role `json:"role" validate:"required,oneof=superadmin admin staff"`
	ProfilePic string      `json:"profilePic,omitempty"`
}

// UserWorkDetail is the response of the per-user work-history lookup.
type UserWorkDetail struct {
	User  entity.User   `json:"user"`
	Works []entity.Work `json:"works"`
}
