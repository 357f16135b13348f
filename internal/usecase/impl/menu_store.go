package impl

import (
	"context"
	"log/slog"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"

	"canopus/config"
	"canopus/internal/api"
	"canopus/internal/domain/entity"
	domainerrors "canopus/internal/domain/errors"
	"canopus/internal/errors"
	"canopus/internal/usecase"

	"go.uber.org/fx"
)

// menuStore implements the MenuUsecase interface for the paginated menu
// collection and its category set.
type menuStore struct {
	mu     sync.Mutex
	client *api.Client
	logger *slog.Logger
	limit  int

	items      []entity.MenuItem
	categories []string
	page       int
	totalPages int
	state      usecase.State
	fetchSeq   uint64
}

// MenuStoreParams holds dependencies for the menu store, injected by Fx.
type MenuStoreParams struct {
	fx.In

	Config *config.Config
	Client *api.Client
	Logger *slog.Logger
}

// NewMenuStore is the constructor for menuStore.
func NewMenuStore(params MenuStoreParams) usecase.MenuUsecase {
	return &menuStore{
		client: params.Client,
		logger: params.Logger,
		limit:  params.Config.Pagination.MenuPageSize,
		page:   1,
		state:  usecase.StateIdle,
	}
}

// menuListResponse is the backend's paginated menu payload.
type menuListResponse struct {
	Items      []entity.MenuItem `json:"items"`
	TotalPages int               `json:"totalPages"`
}

// menuItemResponse wraps the canonical item returned by mutating calls.
type menuItemResponse struct {
	Item *entity.MenuItem `json:"item"`
}

// Fetch replaces the collection with the requested page. Stale
// responses, resolved after a newer fetch was issued, are discarded.
func (s *menuStore) Fetch(ctx context.Context, page int) ([]entity.MenuItem, error) {
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

	var resp menuListResponse
	err := s.client.Get(ctx, "/menu", query, &resp)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.fetchSeq {
		s.logger.Debug("discarding stale menu list response", slog.Int("page", page))
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch menu items")
		}

		return resp.Items, nil
	}
	if err != nil {
		s.state = usecase.StateError

		return nil, errors.Wrap(err, "failed to fetch menu items")
	}

	s.items = resp.Items
	s.page = page
	s.totalPages = max(resp.TotalPages, 1)
	s.state = usecase.StateReady

	return slices.Clone(resp.Items), nil
}

// Items returns a snapshot copy of the current page.
func (s *menuStore) Items() []entity.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.items)
}

// Page returns the current page number.
func (s *menuStore) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.page
}

// TotalPages returns the page count reported by the server.
func (s *menuStore) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.totalPages
}

// State returns the store lifecycle state.
func (s *menuStore) State() usecase.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Create validates the input locally, posts it, and resets to page 1 so
// the new item's placement comes from the server.
func (s *menuStore) Create(ctx context.Context, input usecase.MenuItemInput) (*entity.MenuItem, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var resp menuItemResponse
	if err := s.client.Post(ctx, "/menu", input, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to create menu item")
	}
	if resp.Item == nil {
		return nil, domainerrors.ErrServer.WithDetails("create response missing item")
	}

	if _, err := s.Fetch(ctx, 1); err != nil {
		return nil, errors.Wrap(err, "menu item created but list refresh failed")
	}

	s.logger.Info("menu item created", slog.String("item_id", resp.Item.ID))

	return resp.Item, nil
}

// Update sends the item fields and refetches the current page.
func (s *menuStore) Update(ctx context.Context, id string, input usecase.MenuItemInput) (*entity.MenuItem, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var resp menuItemResponse
	if err := s.client.Put(ctx, "/menu/"+id, input, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to update menu item")
	}
	if resp.Item == nil {
		return nil, domainerrors.ErrServer.WithDetails("update response missing item")
	}

	if _, err := s.Fetch(ctx, s.Page()); err != nil {
		return nil, errors.Wrap(err, "menu item updated but list refresh failed")
	}

	return resp.Item, nil
}

// Remove deletes the item and refetches. Removing the last item of a
// page beyond the first refetches the previous page instead of leaving
// an empty page displayed.
func (s *menuStore) Remove(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/menu/"+id, nil); err != nil {
		return errors.Wrap(err, "failed to delete menu item")
	}

	s.mu.Lock()
	lastOnPage := len(s.items) == 1 && s.items[0].ID == id
	page := s.page
	s.mu.Unlock()

	if lastOnPage && page > 1 {
		page--
	}
	if _, err := s.Fetch(ctx, page); err != nil {
		return errors.Wrap(err, "menu item deleted but list refresh failed")
	}

	return nil
}

// Categories returns a snapshot copy of the category names.
func (s *menuStore) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.categories)
}

// FetchCategories loads the category set.
func (s *menuStore) FetchCategories(ctx context.Context) ([]string, error) {
	var resp []entity.Category
	if err := s.client.Get(ctx, "/menu/categories", nil, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to fetch menu categories")
	}

	names := make([]string, 0, len(resp))
	for _, c := range resp {
		names = append(names, c.Name)
	}

	s.mu.Lock()
	s.categories = names
	s.mu.Unlock()

	return slices.Clone(names), nil
}

// CreateCategory adds a named category to the set.
func (s *menuStore) CreateCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domainerrors.ErrValidation.WithDetails("category name must not be empty")
	}

	body := map[string]string{"name": name}
	if err := s.client.Post(ctx, "/menu/categories", body, nil); err != nil {
		return errors.Wrap(err, "failed to create category")
	}

	s.mu.Lock()
	s.categories = append(s.categories, name)
	s.mu.Unlock()

	return nil
}

// RemoveCategory deletes a category. Item cascade happens server-side,
// so the store refetches page 1 rather than reconciling locally.
func (s *menuStore) RemoveCategory(ctx context.Context, name string) error {
	if err := s.client.Delete(ctx, "/menu/categories/"+url.PathEscape(name), nil); err != nil {
		return errors.Wrap(err, "failed to delete category")
	}

	s.mu.Lock()
	s.categories = slices.DeleteFunc(s.categories, func(c string) bool { return c == name })
	s.mu.Unlock()

	if _, err := s.Fetch(ctx, 1); err != nil {
		return errors.Wrap(err, "category deleted but list refresh failed")
	}

	return nil
}
