package impl

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"canopus/internal/api"
	"canopus/internal/domain/entity"
	"canopus/internal/errors"
	"canopus/internal/usecase"

	"go.uber.org/fx"
)

// weddingStore implements the WeddingUsecase interface.
type weddingStore struct {
	mu     sync.Mutex
	client *api.Client
	logger *slog.Logger

	weddings []entity.Wedding
	state    usecase.State
	fetchSeq uint64
}

// WeddingStoreParams holds dependencies for the wedding store, injected by Fx.
type WeddingStoreParams struct {
	fx.In

	Client *api.Client
	Logger *slog.Logger
}

// NewWeddingStore is the constructor for weddingStore.
func NewWeddingStore(params WeddingStoreParams) usecase.WeddingUsecase {
	return &weddingStore{
		client: params.Client,
		logger: params.Logger,
		state:  usecase.StateIdle,
	}
}

// Fetch replaces the collection with the server's list. Stale responses
// are discarded.
func (s *weddingStore) Fetch(ctx context.Context) ([]entity.Wedding, error) {
	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.state = usecase.StateLoading
	s.mu.Unlock()

	var weddings []entity.Wedding
	err := s.client.Get(ctx, "/weddings", nil, &weddings)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.fetchSeq {
		s.logger.Debug("discarding stale wedding list response")
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch weddings")
		}

		return weddings, nil
	}
	if err != nil {
		s.state = usecase.StateError

		return nil, errors.Wrap(err, "failed to fetch weddings")
	}

	s.weddings = weddings
	s.state = usecase.StateReady

	return slices.Clone(weddings), nil
}

// Weddings returns a snapshot copy of the collection.
func (s *weddingStore) Weddings() []entity.Wedding {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.weddings)
}

// State returns the store lifecycle state.
func (s *weddingStore) State() usecase.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Create validates the input locally, posts it, and prepends the
// canonical wedding so the newest entry displays first.
func (s *weddingStore) Create(ctx context.Context, input usecase.WeddingInput) (*entity.Wedding, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var created entity.Wedding
	if err := s.client.Post(ctx, "/weddings", input, &created); err != nil {
		return nil, errors.Wrap(err, "failed to create wedding")
	}

	s.mu.Lock()
	s.weddings = append([]entity.Wedding{created}, s.weddings...)
	s.mu.Unlock()

	s.logger.Info("wedding created", slog.String("wedding_id", created.ID))

	return &created, nil
}

// Remove deletes the wedding and drops it from the collection.
func (s *weddingStore) Remove(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/weddings/"+id, nil); err != nil {
		return errors.Wrap(err, "failed to delete wedding")
	}

	s.mu.Lock()
	s.weddings = slices.DeleteFunc(s.weddings, func(w entity.Wedding) bool { return w.ID == id })
	s.mu.Unlock()

	return nil
}
