package impl

import (
	"context"
	"log/slog"
	"net/url"
	"slices"
	"strconv"
	"sync"

	"canopus/config"
	"canopus/internal/api"
	"canopus/internal/domain/entity"
	"canopus/internal/errors"
	"canopus/internal/usecase"

	"go.uber.org/fx"
)

// galleryStore implements the GalleryUsecase interface for the
// paginated gallery collection.
type galleryStore struct {
	mu     sync.Mutex
	client *api.Client
	logger *slog.Logger
	limit  int

	images     []entity.GalleryImage
	page       int
	totalPages int
	state      usecase.State
	fetchSeq   uint64
}

// GalleryStoreParams holds dependencies for the gallery store, injected by Fx.
type GalleryStoreParams struct {
	fx.In

	Config *config.Config
	Client *api.Client
	Logger *slog.Logger
}

// NewGalleryStore is the constructor for galleryStore.
func NewGalleryStore(params GalleryStoreParams) usecase.GalleryUsecase {
	return &galleryStore{
		client: params.Client,
		logger: params.Logger,
		limit:  params.Config.Pagination.GalleryLimit,
		page:   1,
		state:  usecase.StateIdle,
	}
}

// galleryListResponse is the backend's paginated gallery payload.
type galleryListResponse struct {
	Images     []entity.GalleryImage `json:"images"`
	TotalPages int                   `json:"totalPages"`
}

// Fetch replaces the collection with the requested page. Stale
// responses are discarded.
func (s *galleryStore) Fetch(ctx context.Context, page int) ([]entity.GalleryImage, error) {
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.state = usecase.StateLoading
	limit := s.limit
	s.mu.Unlock()

	query := url.Values{
		"page":  []string{strconv.Itoa(page)},
		"limit": []string{strconv.Itoa(limit)},
	}

	var resp galleryListResponse
	err := s.client.Get(ctx, "/gallery", query, &resp)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.fetchSeq {
		s.logger.Debug("discarding stale gallery response", slog.Int("page", page))
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch gallery")
		}

		return resp.Images, nil
	}
	if err != nil {
		s.state = usecase.StateError

		return nil, errors.Wrap(err, "failed to fetch gallery")
	}

	s.images = resp.Images
	s.page = page
	s.totalPages = max(resp.TotalPages, 1)
	s.state = usecase.StateReady

	return slices.Clone(resp.Images), nil
}

// Images returns a snapshot copy of the current page.
func (s *galleryStore) Images() []entity.GalleryImage {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.images)
}

// Page returns the current page number.
func (s *galleryStore) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.page
}

// TotalPages returns the page count reported by the server.
func (s *galleryStore) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.totalPages
}

// State returns the store lifecycle state.
func (s *galleryStore) State() usecase.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Add registers an already-uploaded image URL with the backend and
// refetches page 1. The upload itself happens against the asset host
// before this call.
func (s *galleryStore) Add(ctx context.Context, imageURL string) error {
	if err := validateInput(struct {
		Image string `validate:"required,url"`
	}{imageURL}); err != nil {
		return err
	}

	body := map[string]string{"image": imageURL}
	if err := s.client.Post(ctx, "/gallery", body, nil); err != nil {
		return errors.Wrap(err, "failed to add gallery image")
	}

	if _, err := s.Fetch(ctx, 1); err != nil {
		return errors.Wrap(err, "image added but gallery refresh failed")
	}

	return nil
}

// Remove deletes the image. Removing the last item of a page beyond the
// first refetches the previous page (pagination-consistency rule).
func (s *galleryStore) Remove(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/gallery/"+id, nil); err != nil {
		return errors.Wrap(err, "failed to delete gallery image")
	}

	s.mu.Lock()
	lastOnPage := len(s.images) == 1 && s.images[0].ID == id
	page := s.page
	s.mu.Unlock()

	if lastOnPage && page > 1 {
		page--
	}
	if _, err := s.Fetch(ctx, page); err != nil {
		return errors.Wrap(err, "image deleted but gallery refresh failed")
	}

	return nil
}
