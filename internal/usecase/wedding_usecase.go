package usecase

import (
	"context"

	"canopus/internal/domain/entity"
)

// WeddingUsecase mirrors the showcased wedding collection.
type WeddingUsecase interface {
	// Fetch replaces the collection with the server's current list.
	Fetch(ctx context.Context) ([]entity.Wedding, error)

	// Weddings returns a snapshot copy of the collection.
	Weddings() []entity.Wedding

	// State returns the store lifecycle state.
	State() State

	// Create validates input locally, posts it, and prepends the
	// canonical wedding so the newest entry displays first.
	Create(ctx context.Context, input WeddingInput) (*entity.Wedding, error)

	// Remove deletes the wedding and drops it from the collection.
	Remove(ctx context.Context, id string) error
}

// WeddingInput is the client-side contract for a showcased wedding.
type WeddingInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image" validate:"required,url"`
}
