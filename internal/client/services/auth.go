// Package services contains application services of the gophnotes client.
// This file defines the authentication gateway: login, registration, token
// refresh, session restore on startup and logout, with the access token
// persisted in the local metadata store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// AuthService defines authentication operations for the client.
//
// Contract:
//   - Login: authenticate, establish the session and persist the token.
//   - Register: create an account; never establishes a session.
//   - Refresh: exchange the current token for a new one.
//   - Restore: re-establish the session from a persisted, unexpired token.
//   - Logout: clear the session and the persisted token.
//   - Err: message of the last failure, "" after a successful call.
//
// Failures are *client.Error values; match their kind with errors.Is.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
	Register(ctx context.Context, creds models.Credentials) (*models.User, error)
	Refresh(ctx context.Context) error
	Restore(ctx context.Context) (bool, error)
	Logout(ctx context.Context) error
	Err() string
	Close(ctx context.Context) error
}

var errMissingCredentials = &client.Error{Kind: client.ErrAuthFailed, Message: "Email and password are required"}

var errNotAuthenticated = &client.Error{Kind: client.ErrAuthFailed, Message: "Not authenticated"}

type authService struct {
	client  client.Client
	session *session.Store
	db      *sql.DB
	repo    metadata.Factory
	log     logging.Logger
	now     func() time.Time

	mu      sync.Mutex
	lastErr string
}

// NewAuthService constructs an AuthService bound to the API client, the
// session store and the local database.
func NewAuthService(c client.Client, s *session.Store, db *sql.DB, log logging.Logger) AuthService {
	return &authService{
		client:  c,
		session: s,
		db:      db,
		repo:    metadata.SQLite,
		log:     log.With("component", "auth"),
		now:     time.Now,
	}
}

func (a *authService) Err() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// begin clears the error slot and raises the loading flag. The returned func
// records err in the slot and lowers the flag.
func (a *authService) begin() func(err error) {
	a.setErr(nil)
	a.session.SetLoading(true)
	return func(err error) {
		a.setErr(err)
		a.session.SetLoading(false)
	}
}

func (a *authService) setErr(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastErr = client.Message(err)
}

func validCredentials(creds models.Credentials) bool {
	return strings.TrimSpace(creds.Email) != "" && creds.Password != ""
}

// Login authenticates against the service. The user is taken from the token
// claims when the token is a JWT and synthesized from the email otherwise.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (user *models.User, err error) {
	done := a.begin()
	defer func() { done(err) }()

	if !validCredentials(creds) {
		return nil, errMissingCredentials
	}

	token, err := a.client.Login(ctx, creds)
	if err != nil {
		a.log.Warn(ctx, "login failed", "email", creds.Email, "error", err)
		return nil, err
	}

	user = a.userFromToken(token, creds.Email)
	a.session.SetAuth(*user, token)

	if perr := a.saveToken(ctx, token, user.Email); perr != nil {
		a.log.Error(ctx, "persist token failed", "error", perr)
	}

	a.log.Info(ctx, "logged in", "user_id", user.ID)
	return user, nil
}

func (a *authService) userFromToken(token, email string) *models.User {
	claims, err := client.ParseClaims(token, a.now())
	if err != nil && !errors.Is(err, common.ErrTokenExpired) {
		return a.fallbackUser(email)
	}
	return userFromClaims(claims, email)
}

// fallbackUser is the identity used with opaque tokens. It is shown to the
// user and never trusted as verified.
func (a *authService) fallbackUser(email string) *models.User {
	now := a.now()
	email = strings.TrimSpace(email)
	return &models.User{
		ID:        email,
		Email:     email,
		Role:      models.DefaultRole,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func userFromClaims(claims *client.Claims, email string) *models.User {
	u := claims.User()
	if u.Email == "" {
		u.Email = strings.TrimSpace(email)
	}
	if u.ID == "" {
		u.ID = u.Email
	}
	return u
}

func (a *authService) Register(ctx context.Context, creds models.Credentials) (user *models.User, err error) {
	done := a.begin()
	defer func() { done(err) }()

	if !validCredentials(creds) {
		return nil, errMissingCredentials
	}

	user, err = a.client.Register(ctx, creds)
	if err != nil {
		a.log.Warn(ctx, "registration failed", "email", creds.Email, "error", err)
		return nil, err
	}
	a.log.Info(ctx, "registered", "user_id", user.ID)
	return user, nil
}

// Refresh replaces the current token in the session and in local storage.
func (a *authService) Refresh(ctx context.Context) (err error) {
	done := a.begin()
	defer func() { done(err) }()

	current := a.session.Token()
	if current == "" {
		return errNotAuthenticated
	}

	token, err := a.client.Refresh(ctx, current)
	if err != nil {
		a.log.Warn(ctx, "token refresh failed", "error", err)
		return err
	}

	a.session.SetToken(token)
	var email string
	if u := a.session.User(); u != nil {
		email = u.Email
	}
	if perr := a.saveToken(ctx, token, email); perr != nil {
		a.log.Error(ctx, "persist token failed", "error", perr)
	}
	return nil
}

// Restore reads the persisted token and establishes the session from it.
// A JWT gives the user from its claims; an opaque token gets the same
// fallback user Login built, from the persisted email. Expired tokens and
// opaque tokens without an email are removed. The bool reports whether a
// session was established.
func (a *authService) Restore(ctx context.Context) (bool, error) {
	a.setErr(nil)

	repo := a.repo(a.db)
	raw, err := repo.Get(ctx, common.AccessTokenKey)
	if err != nil {
		return false, err
	}
	if len(raw) == 0 {
		return false, nil
	}
	token := string(raw)

	email, err := repo.Get(ctx, common.SessionEmailKey)
	if err != nil {
		return false, err
	}

	claims, err := client.ParseClaims(token, a.now())
	switch {
	case err == nil:
		a.session.SetAuth(*userFromClaims(claims, string(email)), token)
	case errors.Is(err, common.ErrTokenExpired):
		a.log.Info(ctx, "discarding expired token")
		return false, a.deleteToken(ctx)
	case len(email) == 0:
		a.log.Info(ctx, "discarding opaque token without session email")
		return false, a.deleteToken(ctx)
	default:
		a.session.SetAuth(*a.fallbackUser(string(email)), token)
	}

	a.log.Debug(ctx, "session restored", "user_id", a.session.User().ID)
	return true, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.setErr(nil)
	a.session.Logout()
	if err := a.deleteToken(ctx); err != nil {
		a.log.Error(ctx, "remove persisted token failed", "error", err)
		return err
	}
	return nil
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// saveToken writes the token, its save time and the session email in a
// single transaction.
func (a *authService) saveToken(ctx context.Context, token, email string) error {
	return dbx.WithTx(ctx, a.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.repo(tx)
		if err := repo.Set(ctx, common.AccessTokenKey, []byte(token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, common.SessionEmailKey, []byte(email)); err != nil {
			return err
		}
		return repo.Set(ctx, common.TokenSavedAtKey, []byte(a.now().UTC().Format(time.RFC3339)))
	})
}

func (a *authService) deleteToken(ctx context.Context) error {
	return a.repo(a.db).Delete(ctx, common.AccessTokenKey, common.TokenSavedAtKey, common.SessionEmailKey)
}
