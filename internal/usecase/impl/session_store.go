package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"canopus/internal/api"
	"canopus/internal/domain/entity"
	domainerrors "canopus/internal/domain/errors"
	"canopus/internal/errors"
	"canopus/internal/infra/credential"
	"canopus/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/fx"
)

// sessionStore implements the SessionUsecase interface. It is the only
// writer of the credential store the API client reads its token from.
type sessionStore struct {
	mu     sync.Mutex
	client *api.Client
	creds  *credential.Store
	logger *slog.Logger
}

// SessionStoreParams holds dependencies for the session store, injected by Fx.
type SessionStoreParams struct {
	fx.In

	Client      *api.Client
	Credentials *credential.Store
	Logger      *slog.Logger
}

// NewSessionStore is the constructor for sessionStore.
func NewSessionStore(params SessionStoreParams) usecase.SessionUsecase {
	return &sessionStore{
		client: params.Client,
		creds:  params.Credentials,
		logger: params.Logger,
	}
}

// loginResponse is the backend's login payload.
type loginResponse struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

// Restore loads the persisted session, discarding tokens whose JWT
// expiry has already passed. Tokens that are not parseable as JWTs are
// kept; the backend remains the authority on their validity.
func (s *sessionStore) Restore(ctx context.Context) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.creds.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load persisted session")
	}
	if session == nil || !session.IsAuthenticated() {
		s.creds.Set(nil)

		return nil, nil
	}

	if tokenExpired(session.Token) {
		s.logger.Info("persisted token expired, discarding session")
		if err := s.creds.Clear(); err != nil {
			return nil, errors.Wrap(err, "failed to clear expired session")
		}

		return nil, nil
	}

	s.logger.Debug("session restored", slog.String("user_id", session.User.ID))

	return session, nil
}

// Login authenticates and stores the returned session in memory and on
// disk. A 401 surfaces as invalid credentials; the session is left
// untouched on any failure.
func (s *sessionStore) Login(ctx context.Context, email, password string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	body := map[string]string{"email": email, "password": password}

	var resp loginResponse
	if err := s.client.Post(ctx, "/user/login", body, &resp); err != nil {
		if errors.Is(err, domainerrors.ErrUnauthorized) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "login request failed")
	}
	if resp.User == nil || resp.Token == "" {
		return nil, domainerrors.ErrServer.WithDetails("login response missing user or token")
	}

	session := &entity.Session{User: resp.User, Token: resp.Token}
	if err := s.creds.Save(session); err != nil {
		return nil, errors.Wrap(err, "failed to persist session")
	}

	s.logger.Info("logged in", slog.String("user_id", resp.User.ID), slog.String("role", resp.User.Role.String()))

	return resp.User, nil
}

// Logout clears the in-memory session, the persisted file and with them
// the bearer token the API client attaches.
func (s *sessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.creds.Clear(); err != nil {
		return errors.Wrap(err, "failed to clear session")
	}

	s.logger.Info("logged out")

	return nil
}

// CurrentUser returns the logged-in user, or nil.
func (s *sessionStore) CurrentUser() *entity.User {
	session := s.creds.Current()
	if session == nil {
		return nil
	}

	return session.User
}

// UpdateCurrentUser submits a partial update for the session's own user
// and replaces the held user with the server's canonical object.
func (s *sessionStore) UpdateCurrentUser(ctx context.Context, input usecase.UpdateUserInput) (*entity.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.creds.Current()
	if !session.IsAuthenticated() {
		return nil, domainerrors.ErrNoSession
	}

	var resp struct {
		User *entity.User `json:"user"`
	}
	if err := s.client.Put(ctx, "/user/"+session.User.ID, input, &resp); err != nil {
		return nil, errors.Wrap(err, "profile update failed")
	}
	if resp.User == nil {
		return nil, domainerrors.ErrServer.WithDetails("update response missing user")
	}

	next := &entity.Session{User: resp.User, Token: session.Token}
	if err := s.creds.Save(next); err != nil {
		return nil, errors.Wrap(err, "failed to persist updated session")
	}

	return resp.User, nil
}

// UpdateNotifications updates the current user's notification channel
// preferences and re-persists the session.
func (s *sessionStore) UpdateNotifications(ctx context.Context, prefs entity.Notifications) (entity.Notifications, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.creds.Current()
	if !session.IsAuthenticated() {
		return entity.Notifications{}, domainerrors.ErrNoSession
	}

	var resp struct {
		Notifications entity.Notifications `json:"notifications"`
	}
	if err := s.client.Patch(ctx, "/user/"+session.User.ID+"/notifications", prefs, &resp); err != nil {
		return entity.Notifications{}, errors.Wrap(err, "notification update failed")
	}

	updated := *session.User
	updated.Notifications = resp.Notifications
	if err := s.creds.Save(&entity.Session{User: &updated, Token: session.Token}); err != nil {
		return entity.Notifications{}, errors.Wrap(err, "failed to persist updated session")
	}

	return resp.Notifications, nil
}

// ForgotPassword starts the password-recovery flow for an email.
func (s *sessionStore) ForgotPassword(ctx context.Context, email string) error {
	if err := validateInput(struct {
		Email string `validate:"required,email"`
	}{email}); err != nil {
		return err
	}

	body := map[string]string{"email": email}

	return errors.Wrap(s.client.Post(ctx, "/user/forgot-password", body, nil), "forgot-password request failed")
}

// ResetPassword completes recovery with the emailed token.
func (s *sessionStore) ResetPassword(ctx context.Context, token, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	body := map[string]string{"password": password}

	return errors.Wrap(s.client.Post(ctx, "/user/reset-password/"+token, body, nil), "reset-password request failed")
}

// SetPassword sets the initial password from an invitation token.
func (s *sessionStore) SetPassword(ctx context.Context, token, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	body := map[string]string{"password": password}

	return errors.Wrap(s.client.Post(ctx, "/user/set-password/"+token, body, nil), "set-password request failed")
}

func validatePassword(password string) error {
	return validateInput(struct {
		Password string `validate:"required,min=6"`
	}{password})
}

// tokenExpired reports whether token carries a JWT exp claim in the
// past. Unparseable tokens are treated as live.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now())
}
