package usecase

import (
	"context"

	"canopus/internal/domain/entity"
)

// GalleryUsecase mirrors one page of the paginated gallery collection.
type GalleryUsecase interface {
	// Fetch replaces the collection with the requested page and updates
	// pagination metadata.
	Fetch(ctx context.Context, page int) ([]entity.GalleryImage, error)

	// Images returns a snapshot copy of the current page.
	Images() []entity.GalleryImage

	// Page returns the current page number (1-based).
	Page() int

	// TotalPages returns the page count reported by the server.
	TotalPages() int

	// State returns the store lifecycle state.
	State() State

	// Add registers an already-uploaded image URL and refetches page 1.
	Add(ctx context.Context, imageURL string) error

	// Remove deletes the image, refetching the previous page when the
	// last item of a page beyond the first was removed.
	Remove(ctx context.Context, id string) error
}
