package impl

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"canopus/internal/api"
	"canopus/internal/domain/entity"
	domainerrors "canopus/internal/domain/errors"
	"canopus/internal/errors"
	"canopus/internal/usecase"

	"go.uber.org/fx"
)

// userStore implements the UserUsecase interface for the staff roster.
// It depends on the session store only to destroy the session when the
// logged-in user deletes their own account.
type userStore struct {
	mu      sync.Mutex
	client  *api.Client
	session usecase.SessionUsecase
	logger  *slog.Logger

	users    []entity.User
	state    usecase.State
	fetchSeq uint64
}

// UserStoreParams holds dependencies for the user store, injected by Fx.
type UserStoreParams struct {
	fx.In

	Client  *api.Client
	Session usecase.SessionUsecase
	Logger  *slog.Logger
}

// NewUserStore is the constructor for userStore.
func NewUserStore(params UserStoreParams) usecase.UserUsecase {
	return &userStore{
		client:  params.Client,
		session: params.Session,
		logger:  params.Logger,
		state:   usecase.StateIdle,
	}
}

// userResponse wraps the canonical user returned by mutating calls.
type userResponse struct {
	User *entity.User `json:"user"`
}

// Fetch replaces the roster with the server's list of users and their
// completed-work counts. Stale responses are discarded.
func (s *userStore) Fetch(ctx context.Context) ([]entity.User, error) {
	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.state = usecase.StateLoading
	s.mu.Unlock()

	var users []entity.User
	err := s.client.Get(ctx, "/user/with-work", nil, &users)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.fetchSeq {
		s.logger.Debug("discarding stale user list response")
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch users")
		}

		return users, nil
	}
	if err != nil {
		s.state = usecase.StateError

		return nil, errors.Wrap(err, "failed to fetch users")
	}

	s.users = users
	s.state = usecase.StateReady

	return slices.Clone(users), nil
}

// Users returns a snapshot copy of the roster.
func (s *userStore) Users() []entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.users)
}

// State returns the store lifecycle state.
func (s *userStore) State() usecase.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// FetchWithWork loads one user with their work history. The result is
// returned to the caller and not merged into the roster.
func (s *userStore) FetchWithWork(ctx context.Context, id string) (*usecase.UserWorkDetail, error) {
	var detail usecase.UserWorkDetail
	if err := s.client.Get(ctx, "/user/with-work/"+id, nil, &detail); err != nil {
		return nil, errors.Wrap(err, "failed to fetch user work detail")
	}

	return &detail, nil
}

// Create validates the input locally, posts it, and appends the
// canonical user returned by the server.
func (s *userStore) Create(ctx context.Context, input usecase.CreateUserInput) (*entity.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var resp userResponse
	if err := s.client.Post(ctx, "/user/create", input, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}
	if resp.User == nil {
		return nil, domainerrors.ErrServer.WithDetails("create response missing user")
	}

	s.mu.Lock()
	s.users = append(s.users, *resp.User)
	s.mu.Unlock()

	s.logger.Info("user created", slog.String("user_id", resp.User.ID), slog.String("role", resp.User.Role.String()))

	return resp.User, nil
}

// Update sends partial fields and replaces the matching roster entry
// with the canonical response.
func (s *userStore) Update(ctx context.Context, id string, input usecase.UpdateUserInput) (*entity.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var resp userResponse
	if err := s.client.Put(ctx, "/user/"+id, input, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}
	if resp.User == nil {
		return nil, domainerrors.ErrServer.WithDetails("update response missing user")
	}

	s.replace(*resp.User)

	return resp.User, nil
}

// UpdateRole is a restricted single-field role update.
func (s *userStore) UpdateRole(ctx context.Context, id string, role entity.Role) (*entity.User, error) {
	if !role.IsValid() {
		return nil, domainerrors.ErrValidation.WithDetails("invalid role: " + role.String())
	}

	body := map[string]entity.Role{"role": role}

	var resp userResponse
	if err := s.client.Put(ctx, "/user/"+id, body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to update user role")
	}
	if resp.User == nil {
		return nil, domainerrors.ErrServer.WithDetails("role update response missing user")
	}

	s.replace(*resp.User)

	return resp.User, nil
}

// Remove deletes the user and drops them from the roster. Removing the
// session's own user destroys the session as well.
func (s *userStore) Remove(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/user/"+id, nil); err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	s.mu.Lock()
	s.users = slices.DeleteFunc(s.users, func(u entity.User) bool { return u.ID == id })
	s.mu.Unlock()

	if current := s.session.CurrentUser(); current != nil && current.ID == id {
		s.logger.Info("deleted own account, destroying session", slog.String("user_id", id))

		return errors.Wrap(s.session.Logout(ctx), "failed to clear session after self-delete")
	}

	return nil
}

// replace swaps the roster entry matching the canonical user's
// identifier.
func (s *userStore) replace(user entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == user.ID {
			s.users[i] = user

			return
		}
	}
}
