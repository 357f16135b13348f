package usecase

import (
	"context"

	"canopus/internal/domain/entity"
)

// MenuUsecase mirrors one page of the backend's menu collection plus the
// category set.
type MenuUsecase interface {
	// Fetch replaces the collection with the requested page and updates
	// pagination metadata.
	Fetch(ctx context.Context, page int) ([]entity.MenuItem, error)

	// Items returns a snapshot copy of the current page.
	Items() []entity.MenuItem

	// Page returns the current page number (1-based).
	Page() int

	// TotalPages returns the page count reported by the server.
	TotalPages() int

	// State returns the store lifecycle state.
	State() State

	// Create validates input locally, posts it, and resets to page 1 so
	// the new item's canonical placement comes from the server.
	Create(ctx context.Context, input MenuItemInput) (*entity.MenuItem, error)

	// Update sends the item fields and refetches the current page.
	Update(ctx context.Context, id string, input MenuItemInput) (*entity.MenuItem, error)

	// Remove deletes the item. Removing the last item of a page beyond
	// the first refetches the previous page instead of showing an empty
	// one.
	Remove(ctx context.Context, id string) error

	// Categories returns a snapshot copy of the category names.
	Categories() []string

	// FetchCategories loads the category set once.
	FetchCategories(ctx context.Context) ([]string, error)

	// CreateCategory adds a named category.
	CreateCategory(ctx context.Context, name string) error

	// RemoveCategory deletes a category; affected items are cascaded
	// server-side, so the store refetches page 1.
	RemoveCategory(ctx context.Context, name string) error
}

// MenuItemInput is the client-side contract for a menu item.
type MenuItemInput struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Category string  `json:"category" validate:"required"`
	Image    string  `json:"image" validate:"required,url"`
}
