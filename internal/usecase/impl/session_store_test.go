package impl

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"canopus/internal/domain/entity"
	domainerrors "canopus/internal/domain/errors"
	"canopus/internal/infra/credential"
	"canopus/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionFixture(t *testing.T, handler http.HandlerFunc) (usecase.SessionUsecase, *credential.Store, *testBackend) {
	t.Helper()

	backend := newTestBackend(t, handler)
	creds := credential.NewStoreAt(filepath.Join(t.TempDir(), "session.json"))
	store := NewSessionStore(SessionStoreParams{
		Client:      backend.Client(creds.Token),
		Credentials: creds,
		Logger:      testLogger(),
	})

	return store, creds, backend
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return signed
}

func TestSessionStore_Login_StoresSessionAndToken(t *testing.T) {
	store, creds, backend := newSessionFixture(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"user":  entity.User{ID: "u1", Name: "Asha", Email: "asha@example.com", Role: entity.RoleAdmin},
			"token": "tok-123",
		})
	})

	user, err := store.Login(context.Background(), "asha@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, entity.RoleAdmin, user.Role)

	session := creds.Current()
	require.NotNil(t, session)
	assert.Equal(t, "tok-123", session.Token)
	assert.True(t, session.IsAuthenticated())

	// The login call itself runs unauthenticated.
	requests := backend.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "/user/login", requests[0].Path)
	assert.Empty(t, requests[0].Auth)
}

func TestSessionStore_Login_InvalidCredentials(t *testing.T) {
	store, creds, _ := newSessionFixture(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
	})

	_, err := store.Login(context.Background(), "asha@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Nil(t, creds.Current())
}

func TestSessionStore_Logout_ClearsAuthHeader(t *testing.T) {
	calls := 0
	store, creds, backend := newSessionFixture(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			writeJSON(t, w, http.StatusOK, map[string]any{
				"user":  entity.User{ID: "u1", Role: entity.RoleAdmin},
				"token": "tok-123",
			})

			return
		}
		writeJSON(t, w, http.StatusOK, []entity.Work{})
	})

	ctx := context.Background()
	_, err := store.Login(ctx, "a@example.com", "pw")
	require.NoError(t, err)

	// An authenticated request carries the bearer token.
	client := backend.Client(creds.Token)
	var works []entity.Work
	require.NoError(t, client.Get(ctx, "/work", nil, &works))

	require.NoError(t, store.Logout(ctx))
	assert.Nil(t, creds.Current())

	// After logout the same fetch carries no Authorization header.
	require.NoError(t, client.Get(ctx, "/work", nil, &works))

	requests := backend.Requests()
	require.Len(t, requests, 3)
	assert.Equal(t, "Bearer tok-123", requests[1].Auth)
	assert.Empty(t, requests[2].Auth)
}

func TestSessionStore_Restore_RoundTrip(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))

	store, creds, _ := newSessionFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("restore must not touch the network")
	})

	require.NoError(t, creds.Save(&entity.Session{
		User:  &entity.User{ID: "u1", Role: entity.RoleStaff},
		Token: token,
	}))
	creds.Set(nil) // simulate a fresh process

	session, err := store.Restore(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "u1", session.User.ID)
	assert.Equal(t, token, creds.Token())

	// Restore is idempotent.
	again, err := store.Restore(context.Background())
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, session.User.ID, again.User.ID)
}

func TestSessionStore_Restore_DiscardsExpiredToken(t *testing.T) {
	store, creds, _ := newSessionFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("restore must not touch the network")
	})

	require.NoError(t, creds.Save(&entity.Session{
		User:  &entity.User{ID: "u1", Role: entity.RoleStaff},
		Token: signedToken(t, time.Now().Add(-time.Hour)),
	}))
	creds.Set(nil)

	session, err := store.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Empty(t, creds.Token())

	// The persisted file is gone too.
	loaded, err := creds.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSessionStore_Restore_NothingPersisted(t *testing.T) {
	store, _, _ := newSessionFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("restore must not touch the network")
	})

	session, err := store.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSessionStore_UpdateCurrentUser_ReplacesCanonical(t *testing.T) {
	calls := 0
	store, creds, backend := newSessionFixture(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			writeJSON(t, w, http.StatusOK, map[string]any{
				"user":  entity.User{ID: "u1", Name: "Asha", Role: entity.RoleAdmin},
				"token": "tok-123",
			})

			return
		}
		// The server normalizes the name; the client must take the
		// canonical object, not merge locally.
		writeJSON(t, w, http.StatusOK, map[string]any{
			"user": entity.User{ID: "u1", Name: "Asha Rao", Role: entity.RoleAdmin},
		})
	})

	ctx := context.Background()
	_, err := store.Login(ctx, "a@example.com", "pw")
	require.NoError(t, err)

	name := "asha rao"
	updated, err := store.UpdateCurrentUser(ctx, usecase.UpdateUserInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", updated.Name)
	assert.Equal(t, "Asha Rao", creds.Current().User.Name)
	assert.Equal(t, "tok-123", creds.Current().Token)

	requests := backend.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, http.MethodPut, requests[1].Method)
	assert.Equal(t, "/user/u1", requests[1].Path)
	assert.Equal(t, "Bearer tok-123", requests[1].Auth)
}

func TestSessionStore_UpdateCurrentUser_RequiresSession(t *testing.T) {
	store, _, backend := newSessionFixture(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{})
	})

	name := "someone"
	_, err := store.UpdateCurrentUser(context.Background(), usecase.UpdateUserInput{Name: &name})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNoSession)
	assert.Empty(t, backend.Requests())
}

func TestSessionStore_UpdateNotifications(t *testing.T) {
	calls := 0
	store, creds, _ := newSessionFixture(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			writeJSON(t, w, http.StatusOK, map[string]any{
				"user":  entity.User{ID: "u1", Role: entity.RoleAdmin, Notifications: entity.DefaultNotifications()},
				"token": "tok-123",
			})

			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"notifications": entity.Notifications{Email: false, WhatsApp: true},
		})
	})

	ctx := context.Background()
	_, err := store.Login(ctx, "a@example.com", "pw")
	require.NoError(t, err)

	prefs, err := store.UpdateNotifications(ctx, entity.Notifications{Email: false, WhatsApp: true})
	require.NoError(t, err)
	assert.False(t, prefs.Email)
	assert.True(t, prefs.WhatsApp)
	assert.Equal(t, prefs, creds.Current().User.Notifications)
}

func TestSessionStore_PasswordFlows_Validate(t *testing.T) {
	store, _, backend := newSessionFixture(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"message": "ok"})
	})

	ctx := context.Background()

	err := store.ForgotPassword(ctx, "not-an-email")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	err = store.ResetPassword(ctx, "tok", "short")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	assert.Empty(t, backend.Requests(), "validation failures must not reach the network")

	require.NoError(t, store.ForgotPassword(ctx, "asha@example.com"))
	require.NoError(t, store.SetPassword(ctx, "invite-tok", "longenough"))

	requests := backend.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, "/user/forgot-password", requests[0].Path)
	assert.Equal(t, "/user/set-password/invite-tok", requests[1].Path)
}
