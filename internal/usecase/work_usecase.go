package usecase

import (
	"context"
	"time"

	"canopus/internal/domain/entity"
)

// WorkUsecase mirrors the backend's work collection and mediates all
// work mutations. State changes only from server-confirmed canonical
// objects; failures leave prior state untouched.
type WorkUsecase interface {
	// Fetch replaces the collection with the server's current list.
	Fetch(ctx context.Context) ([]entity.Work, error)

	// Works returns a snapshot copy of the collection.
	Works() []entity.Work

	// State returns the store lifecycle state.
	State() State

	// Create validates input locally, posts it, and appends the
	// canonical work returned by the server.
	Create(ctx context.Context, input CreateWorkInput) (*entity.Work, error)

	// Update sends partial fields and replaces the matching entity with
	// the canonical response.
	Update(ctx context.Context, id string, input UpdateWorkInput) (*entity.Work, error)

	// Remove deletes the work and drops it from the collection.
	Remove(ctx context.Context, id string) error

	// UpdateStaffPayment patches one assignment's payment record, then
	// recomputes the work-level payment status from the canonical
	// assignment list and pushes it back if it changed.
	UpdateStaffPayment(ctx context.Context, workID, staffID string, input StaffPaymentInput) (*entity.Work, error)

	// UpdateStatus is a restricted single-field status update.
	UpdateStatus(ctx context.Context, workID string, status entity.WorkStatus) (*entity.Work, error)
}

// CreateWorkInput is the client-side contract for a new work. AssignedTo
// holds staff user identifiers; the store expands them into assignment
// records with zeroed payment state.
type CreateWorkInput struct {
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description"`
	DueDate      time.Time `json:"dueDate" validate:"required"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	TotalMembers int       `json:"totalMembers" validate:"omitempty,gt=0"`
	Budget       float64   `json:"budget" validate:"required,gt=0"`
	AssignedTo   []string  `json:"-" validate:"required,min=1,dive,required"`
}

// UpdateWorkInput is a partial work update; nil fields are omitted.
type UpdateWorkInput struct {
	Title        *string    `json:"title,omitempty" validate:"omitempty,min=1"`
	Description  *string    `json:"description,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	StartTime    *string    `json:"startTime,omitempty"`
	EndTime      *string    `json:"endTime,omitempty"`
	TotalMembers *int       `json:"totalMembers,omitempty" validate:"omitempty,gt=0"`
	Budget       *float64   `json:"budget,omitempty" validate:"omitempty,gt=0"`
	AssignedTo   []string   `json:"-" validate:"omitempty,min=1,dive,required"`
}

// StaffPaymentInput updates one staff assignment's payment record.
type StaffPaymentInput struct {
	AmountPaid    float64              `json:"amountPaid" validate:"gte=0"`
	PaymentStatus entity.PaymentStatus `json:"paymentStatus" validate:"required,oneof=pending completed"`
	Violations    []entity.Violation   `json:"violations"`
}
