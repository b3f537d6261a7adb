package services

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func insertMeta(t *testing.T, db *sql.DB, k string, v []byte) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO metadata(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

func getMeta(t *testing.T, db *sql.DB, k string) ([]byte, bool) {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key=?`, k).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	require.NoError(t, err)
	return v, true
}

func makeToken(t *testing.T, sub, email string, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, client.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(exp.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: email,
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

// ---- fake client ----

// fakeClient implements client.Client for AuthService unit tests.
type fakeClient struct {
	LoginRet string
	LoginErr error

	RegisterRet *models.User
	RegisterErr error

	RefreshRet string
	RefreshErr error

	CloseErr error

	LoginCalls     int
	RegisterCalls  int
	LastCreds      models.Credentials
	LastRefreshTok string
}

func (f *fakeClient) Login(_ context.Context, creds models.Credentials) (string, error) {
	f.LoginCalls++
	f.LastCreds = creds
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, creds models.Credentials) (*models.User, error) {
	f.RegisterCalls++
	f.LastCreds = creds
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) Refresh(_ context.Context, token string) (string, error) {
	f.LastRefreshTok = token
	return f.RefreshRet, f.RefreshErr
}

func (f *fakeClient) ListNotes(context.Context) ([]models.Note, error) { return nil, nil }
func (f *fakeClient) GetNote(context.Context, string) (*models.Note, error) {
	return nil, nil
}
func (f *fakeClient) CreateNote(context.Context, models.NoteInput) (*models.Note, error) {
	return nil, nil
}
func (f *fakeClient) UpdateNote(context.Context, string, models.NoteInput) error { return nil }
func (f *fakeClient) DeleteNote(context.Context, string) error                   { return nil }
func (f *fakeClient) Close() error                                               { return f.CloseErr }

func newTestAuth(t *testing.T, fc client.Client) (AuthService, *session.Store, *sql.DB) {
	t.Helper()
	db := setupDB(t)
	s := session.New()
	return NewAuthService(fc, s, db, logging.Discard()), s, db
}

var creds = models.Credentials{Email: "ann@example.com", Password: "secret1"}

// ---- TESTS ----

func TestLogin_JWT_EstablishesSessionAndPersistsToken(t *testing.T) {
	tok := makeToken(t, "u-42", "ann@example.com", time.Now().Add(time.Hour))
	fc := &fakeClient{LoginRet: tok}
	svc, s, db := newTestAuth(t, fc)

	u, err := svc.Login(context.Background(), creds)
	require.NoError(t, err)
	require.Equal(t, "u-42", u.ID)
	require.Equal(t, "ann@example.com", u.Email)
	require.Equal(t, models.DefaultRole, u.Role)

	require.True(t, s.IsAuthenticated())
	require.Equal(t, tok, s.Token())
	require.False(t, s.IsLoading())
	require.Empty(t, svc.Err())

	saved, ok := getMeta(t, db, common.AccessTokenKey)
	require.True(t, ok)
	require.Equal(t, tok, string(saved))
	_, ok = getMeta(t, db, common.TokenSavedAtKey)
	require.True(t, ok)
}

func TestLogin_OpaqueToken_SynthesizesUser(t *testing.T) {
	fc := &fakeClient{LoginRet: "opaque-token"}
	svc, s, _ := newTestAuth(t, fc)

	u, err := svc.Login(context.Background(), creds)
	require.NoError(t, err)
	require.Equal(t, "ann@example.com", u.Email)
	require.Equal(t, "ann@example.com", u.ID)
	require.Equal(t, models.DefaultRole, u.Role)
	require.True(t, s.IsAuthenticated())
}

func TestLogin_OpaqueToken_SurvivesRestart(t *testing.T) {
	fc := &fakeClient{LoginRet: "opaque-token-123"}
	svc, _, db := newTestAuth(t, fc)
	ctx := context.Background()

	_, err := svc.Login(ctx, creds)
	require.NoError(t, err)
	email, ok := getMeta(t, db, common.SessionEmailKey)
	require.True(t, ok)
	require.Equal(t, creds.Email, string(email))

	restored := session.New()
	again := NewAuthService(fc, restored, db, logging.Discard())
	ok, err = again.Restore(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, restored.IsAuthenticated())
	require.Equal(t, "opaque-token-123", restored.Token())
	require.Equal(t, creds.Email, restored.User().Email)

	_, kept := getMeta(t, db, common.AccessTokenKey)
	require.True(t, kept)
}

// failingRepo fails every write and reads nothing.
type failingRepo struct{}

func (failingRepo) Get(context.Context, string) ([]byte, error) { return nil, nil }
func (failingRepo) Set(context.Context, string, []byte) error   { return errors.New("disk full") }
func (failingRepo) Delete(context.Context, ...string) error     { return errors.New("disk full") }

func TestLogin_PersistFailureIsNotReturned(t *testing.T) {
	svc, s, db := newTestAuth(t, &fakeClient{LoginRet: "tok"})
	svc.(*authService).repo = func(dbx.DBTX) metadata.Repository { return failingRepo{} }
	ctx := context.Background()

	_, err := svc.Login(ctx, creds)
	require.NoError(t, err)
	require.True(t, s.IsAuthenticated())
	require.Empty(t, svc.Err())

	_, ok := getMeta(t, db, common.AccessTokenKey)
	require.False(t, ok)

	require.EqualError(t, svc.Logout(ctx), "disk full")
	require.False(t, s.IsAuthenticated(), "the session is cleared even when storage fails")
}

func TestLogin_Failure_StaysUnauthenticated(t *testing.T) {
	fc := &fakeClient{LoginErr: &client.Error{Kind: client.ErrAuthFailed, Message: "Invalid email or password"}}
	svc, s, db := newTestAuth(t, fc)

	_, err := svc.Login(context.Background(), creds)
	require.ErrorIs(t, err, client.ErrAuthFailed)
	require.Equal(t, "Invalid email or password", svc.Err())
	require.False(t, s.IsAuthenticated())
	require.False(t, s.IsLoading())

	_, ok := getMeta(t, db, common.AccessTokenKey)
	require.False(t, ok)
}

func TestLogin_MissingFields(t *testing.T) {
	fc := &fakeClient{}
	svc, _, _ := newTestAuth(t, fc)

	for _, c := range []models.Credentials{
		{Email: "", Password: "x"},
		{Email: "  ", Password: "x"},
		{Email: "a@b.c", Password: ""},
	} {
		_, err := svc.Login(context.Background(), c)
		require.ErrorIs(t, err, client.ErrAuthFailed)
	}
	require.Zero(t, fc.LoginCalls)
	require.Equal(t, "Email and password are required", svc.Err())
}

func TestErrSlot_ClearedOnNextSuccess(t *testing.T) {
	fc := &fakeClient{LoginErr: &client.Error{Kind: client.ErrAuthFailed, Message: "nope"}}
	svc, _, _ := newTestAuth(t, fc)

	_, err := svc.Login(context.Background(), creds)
	require.Error(t, err)
	require.Equal(t, "nope", svc.Err())

	fc.LoginErr = nil
	fc.LoginRet = "opaque"
	_, err = svc.Login(context.Background(), creds)
	require.NoError(t, err)
	require.Empty(t, svc.Err())
}

func TestRegister_NeverAuthenticates(t *testing.T) {
	fc := &fakeClient{RegisterRet: &models.User{ID: "u1", Email: creds.Email, Role: "user"}}
	svc, s, db := newTestAuth(t, fc)

	u, err := svc.Register(context.Background(), creds)
	require.NoError(t, err)
	require.Equal(t, "u1", u.ID)
	require.Equal(t, creds, fc.LastCreds)

	require.False(t, s.IsAuthenticated())
	_, ok := getMeta(t, db, common.AccessTokenKey)
	require.False(t, ok)
}

func TestRegister_Failure(t *testing.T) {
	fc := &fakeClient{RegisterErr: &client.Error{Kind: client.ErrAuthFailed, Message: "Registration failed"}}
	svc, s, _ := newTestAuth(t, fc)

	_, err := svc.Register(context.Background(), creds)
	require.ErrorIs(t, err, client.ErrAuthFailed)
	require.Equal(t, "Registration failed", svc.Err())
	require.False(t, s.IsAuthenticated())
}

func TestRefresh_ReplacesToken(t *testing.T) {
	fc := &fakeClient{LoginRet: "old", RefreshRet: "new"}
	svc, s, db := newTestAuth(t, fc)
	ctx := context.Background()

	_, err := svc.Login(ctx, creds)
	require.NoError(t, err)

	require.NoError(t, svc.Refresh(ctx))
	require.Equal(t, "old", fc.LastRefreshTok)
	require.Equal(t, "new", s.Token())

	saved, _ := getMeta(t, db, common.AccessTokenKey)
	require.Equal(t, "new", string(saved))
}

func TestRefresh_Unauthenticated(t *testing.T) {
	svc, _, _ := newTestAuth(t, &fakeClient{})
	err := svc.Refresh(context.Background())
	require.ErrorIs(t, err, client.ErrAuthFailed)
	require.Equal(t, "Not authenticated", svc.Err())
}

func TestRefresh_FailureKeepsToken(t *testing.T) {
	fc := &fakeClient{LoginRet: "old", RefreshErr: &client.Error{Kind: client.ErrAuthFailed, Message: "Token refresh failed"}}
	svc, s, _ := newTestAuth(t, fc)
	ctx := context.Background()

	_, err := svc.Login(ctx, creds)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Refresh(ctx), client.ErrAuthFailed)
	require.Equal(t, "old", s.Token())
	require.True(t, s.IsAuthenticated())
}

func TestRestore(t *testing.T) {
	tests := []struct {
		name       string
		token      func(t *testing.T) string
		email      string
		wantAuth   bool
		wantKept   bool
		wantUserID string
	}{
		{
			name:     "nothing persisted",
			token:    func(*testing.T) string { return "" },
			wantAuth: false,
		},
		{
			name:       "valid",
			token:      func(t *testing.T) string { return makeToken(t, "u7", "a@b.c", time.Now().Add(time.Hour)) },
			wantAuth:   true,
			wantKept:   true,
			wantUserID: "u7",
		},
		{
			name:     "expired",
			token:    func(t *testing.T) string { return makeToken(t, "u7", "a@b.c", time.Now().Add(-time.Hour)) },
			wantAuth: false,
		},
		{
			name:       "opaque with session email",
			token:      func(*testing.T) string { return "definitely-not-a-jwt" },
			email:      "ann@example.com",
			wantAuth:   true,
			wantKept:   true,
			wantUserID: "ann@example.com",
		},
		{
			name:     "opaque without session email",
			token:    func(*testing.T) string { return "definitely-not-a-jwt" },
			wantAuth: false,
		},
		{
			name:       "jwt without email claim uses session email",
			token:      func(t *testing.T) string { return makeToken(t, "u9", "", time.Now().Add(time.Hour)) },
			email:      "ann@example.com",
			wantAuth:   true,
			wantKept:   true,
			wantUserID: "u9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, s, db := newTestAuth(t, &fakeClient{})
			if tok := tt.token(t); tok != "" {
				insertMeta(t, db, common.AccessTokenKey, []byte(tok))
			}
			if tt.email != "" {
				insertMeta(t, db, common.SessionEmailKey, []byte(tt.email))
			}

			ok, err := svc.Restore(context.Background())
			require.NoError(t, err)
			require.Equal(t, tt.wantAuth, ok)
			require.Equal(t, tt.wantAuth, s.IsAuthenticated())
			if tt.wantUserID != "" {
				require.Equal(t, tt.wantUserID, s.User().ID)
			}

			_, kept := getMeta(t, db, common.AccessTokenKey)
			require.Equal(t, tt.wantKept, kept)
		})
	}
}

func TestLogout_ClearsSessionAndStorage(t *testing.T) {
	fc := &fakeClient{LoginRet: "tok"}
	svc, s, db := newTestAuth(t, fc)
	ctx := context.Background()

	_, err := svc.Login(ctx, creds)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	require.False(t, s.IsAuthenticated())
	_, ok := getMeta(t, db, common.AccessTokenKey)
	require.False(t, ok)
	_, ok = getMeta(t, db, common.TokenSavedAtKey)
	require.False(t, ok)
	_, ok = getMeta(t, db, common.SessionEmailKey)
	require.False(t, ok)
}

func TestClose_PropagatesClientError(t *testing.T) {
	fc := &fakeClient{CloseErr: errors.New("boom")}
	svc, _, _ := newTestAuth(t, fc)
	require.EqualError(t, svc.Close(context.Background()), "boom")
}

func TestAuthService_AgainstMockClient(t *testing.T) {
	mc := client.NewMockClient(client.WithLatency(client.Latency{}))
	svc, s, _ := newTestAuth(t, mc)
	ctx := context.Background()

	_, err := svc.Register(ctx, creds)
	require.NoError(t, err)
	require.False(t, s.IsAuthenticated())

	u, err := svc.Login(ctx, creds)
	require.NoError(t, err)
	require.Equal(t, creds.Email, u.Email)
	require.True(t, s.IsAuthenticated())

	// a fresh service over the same database picks the session up again
	db := setupDB(t)
	first := NewAuthService(mc, session.New(), db, logging.Discard())
	_, err = first.Login(ctx, creds)
	require.NoError(t, err)

	restored := session.New()
	second := NewAuthService(mc, restored, db, logging.Discard())
	ok, err := second.Restore(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, u.ID, restored.User().ID)
}
