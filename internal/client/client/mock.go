package client

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Latency is the artificial delay the mock applies per call.
type Latency struct {
	Auth   time.Duration
	List   time.Duration
	Get    time.Duration
	Create time.Duration
	Update time.Duration
	Delete time.Duration
}

// DefaultLatency mimics a slow network.
var DefaultLatency = Latency{
	Auth:   300 * time.Millisecond,
	List:   500 * time.Millisecond,
	Get:    200 * time.Millisecond,
	Create: 300 * time.Millisecond,
	Update: 300 * time.Millisecond,
	Delete: 200 * time.Millisecond,
}

// MockOption configures a MockClient.
type MockOption func(*MockClient)

// WithLatency overrides DefaultLatency. The zero Latency disables delays.
func WithLatency(l Latency) MockOption {
	return func(m *MockClient) { m.latency = l }
}

// WithoutSeed starts the mock with an empty collection.
func WithoutSeed() MockOption {
	return func(m *MockClient) { m.seed = false }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MockOption {
	return func(m *MockClient) { m.now = now }
}

// WithTokenTTL sets the lifetime of issued tokens.
func WithTokenTTL(ttl time.Duration) MockOption {
	return func(m *MockClient) { m.tokenTTL = ttl }
}

type mockAccount struct {
	user models.User
	hash []byte
}

// MockClient is an in-memory Client. It keeps one collection of notes and a
// table of registered accounts; tokens are HS256 JWTs signed with a
// per-instance random key. Note calls see only the notes of the account
// that logged in last. Before any login they see the notes without an
// owner, and the first login adopts those.
type MockClient struct {
	mu       sync.Mutex
	notes    []models.Note
	accounts map[string]*mockAccount
	owner    string
	seed     bool

	secret   []byte
	tokenTTL time.Duration
	latency  Latency
	now      func() time.Time
}

var _ Client = (*MockClient)(nil)

// NewMockClient returns a mock seeded with three welcome notes.
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{
		accounts: make(map[string]*mockAccount),
		secret:   common.GenerateRandByteArray(32),
		tokenTTL: 24 * time.Hour,
		latency:  DefaultLatency,
		now:      time.Now,
		seed:     true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.seed {
		m.notes = seedNotes(m.now())
	}
	return m
}

func seedNotes(now time.Time) []models.Note {
	const day = 24 * time.Hour
	return []models.Note{
		{
			ID:    uuid.NewString(),
			Title: "Welcome to Your Notes App",
			Content: "This is your first note! You can create, edit, and delete notes here. " +
				"Notes are kept on the notes service and cached locally while you work.",
			CreatedAt: now.Add(-day),
			UpdatedAt: now.Add(-time.Hour),
		},
		{
			ID:    uuid.NewString(),
			Title: "Meeting Notes - Project Planning",
			Content: "Discussed the new project timeline and deliverables:\n\n" +
				"- Phase 1: Research and planning (2 weeks)\n" +
				"- Phase 2: Design and prototyping (3 weeks)\n" +
				"- Phase 3: Development (6 weeks)\n" +
				"- Phase 4: Testing and deployment (2 weeks)\n\n" +
				"Next meeting scheduled for Friday at 2 PM.",
			CreatedAt: now.Add(-2 * day),
			UpdatedAt: now.Add(-2 * day),
		},
		{
			ID:    uuid.NewString(),
			Title: "Ideas for Weekend",
			Content: "Things I want to do this weekend:\n\n" +
				"1. Visit the new art gallery downtown\n" +
				"2. Try that new restaurant on Main Street\n" +
				"3. Go for a hike in the mountains\n" +
				"4. Read the book I bought last month\n" +
				"5. Organize my workspace",
			CreatedAt: now.Add(-3 * day),
			UpdatedAt: now.Add(-3 * day),
		},
	}
}

// wait sleeps for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (m *MockClient) Register(ctx context.Context, creds models.Credentials) (_ *models.User, err error) {
	defer func() { observe(opRegister, outcomeOf(err)) }()

	if err := wait(ctx, m.latency.Auth); err != nil {
		return nil, networkError(opRegister.fallback, err)
	}

	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		return nil, opRegister.fail("Email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, opRegister.fail("")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[email]; ok {
		return nil, opRegister.fail("User already exists")
	}
	now := m.now()
	acc := &mockAccount{
		user: models.User{
			ID:        uuid.NewString(),
			Email:     email,
			Role:      models.DefaultRole,
			CreatedAt: now,
			UpdatedAt: now,
		},
		hash: hash,
	}
	m.accounts[email] = acc

	u := acc.user
	return &u, nil
}

func (m *MockClient) Login(ctx context.Context, creds models.Credentials) (_ string, err error) {
	defer func() { observe(opLogin, outcomeOf(err)) }()

	if err := wait(ctx, m.latency.Auth); err != nil {
		return "", networkError(opLogin.fallback, err)
	}

	email := strings.ToLower(strings.TrimSpace(creds.Email))

	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[email]
	if !ok || bcrypt.CompareHashAndPassword(acc.hash, []byte(creds.Password)) != nil {
		return "", opLogin.fail("Invalid email or password")
	}

	tok, err := m.issue(acc.user)
	if err != nil {
		return "", opLogin.fail("")
	}
	m.owner = acc.user.ID
	m.adopt(m.owner)
	return tok, nil
}

func (m *MockClient) Refresh(ctx context.Context, token string) (_ string, err error) {
	defer func() { observe(opRefresh, outcomeOf(err)) }()

	if err := wait(ctx, m.latency.Auth); err != nil {
		return "", networkError(opRefresh.fallback, err)
	}

	var claims Claims
	_, err = jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return "", opRefresh.fail("Invalid or expired token")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[claims.Email]
	if !ok {
		return "", opRefresh.fail("Invalid or expired token")
	}
	tok, err := m.issue(acc.user)
	if err != nil {
		return "", opRefresh.fail("")
	}
	return tok, nil
}

// issue signs a token for u. Callers hold m.mu.
func (m *MockClient) issue(u models.User) (string, error) {
	now := m.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
			ID:        uuid.NewString(),
		},
		Email: u.Email,
		Role:  u.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ListNotes returns copies of the notes of the logged-in account, most
// recently updated first.
func (m *MockClient) ListNotes(ctx context.Context) (_ []models.Note, err error) {
	defer func() { observe(opList, outcomeOf(err)) }()

	if err := wait(ctx, m.latency.List); err != nil {
		return nil, networkError(opList.fallback, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Note, 0, len(m.notes))
	for _, n := range m.notes {
		if n.UserID == m.owner {
			out = append(out, n.Clone())
		}
	}
	slices.SortStableFunc(out, func(a, b models.Note) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return out, nil
}

func (m *MockClient) GetNote(ctx context.Context, id string) (_ *models.Note, err error) {
	defer func() { observe(opGet, outcomeOf(err)) }()

	if err := wait(ctx, m.latency.Get); err != nil {
		return nil, networkError(opGet.fallback, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return nil, opGet.notFound("")
	}
	n := m.notes[i].Clone()
	return &n, nil
}

func (m *MockClient) CreateNote(ctx context.Context, in models.NoteInput) (_ *models.Note, err error) {
	defer func() { observe(opCreate, outcomeOf(err)) }()

	if err := wait(ctx, m.latency.Create); err != nil {
		return nil, networkError(opCreate.fallback, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	n := models.Note{
		ID:        uuid.NewString(),
		UserID:    m.owner,
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.notes = append([]models.Note{n}, m.notes...)
	return &n, nil
}

func (m *MockClient) UpdateNote(ctx context.Context, id string, in models.NoteInput) (err error) {
	defer func() { observe(opUpdate, outcomeOf(err)) }()

	if err := wait(ctx, m.latency.Update); err != nil {
		return networkError(opUpdate.fallback, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return opUpdate.notFound("")
	}
	n := &m.notes[i]
	n.Title = in.Title
	n.Content = in.Content
	if now := m.now(); now.After(n.CreatedAt) {
		n.UpdatedAt = now
	} else {
		n.UpdatedAt = n.CreatedAt
	}
	return nil
}

func (m *MockClient) DeleteNote(ctx context.Context, id string) (err error) {
	defer func() { observe(opDelete, outcomeOf(err)) }()

	if err := wait(ctx, m.latency.Delete); err != nil {
		return networkError(opDelete.fallback, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return opDelete.notFound("")
	}
	m.notes = slices.Delete(m.notes, i, i+1)
	return nil
}

// Close is a no-op.
func (m *MockClient) Close() error { return nil }

// index finds a note of the current owner. Notes of other accounts are
// reported as missing.
func (m *MockClient) index(id string) int {
	return slices.IndexFunc(m.notes, func(n models.Note) bool { return n.ID == id && n.UserID == m.owner })
}

// adopt gives notes without an owner, the seed notes included, to owner.
// Callers hold m.mu.
func (m *MockClient) adopt(owner string) {
	for i := range m.notes {
		if m.notes[i].UserID == "" {
			m.notes[i].UserID = owner
		}
	}
}
