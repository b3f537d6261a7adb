package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/services"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/client/store"
	"github.com/dmitrijs2005/gophnotes/internal/filex"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	session *session.Store
	auth    services.AuthService
	notes   *store.NotesStore
	reader  *bufio.Reader
	out     io.Writer

	gatherer prometheus.Gatherer
}

// NewApp wires configuration, local storage, the notes service client and
// the stores. With UseMock set the in-memory mock replaces the service.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, logLevel(c), os.Stderr)
	if err != nil {
		return nil, err
	}

	if err := filex.EnsureParentDir(c.DBPath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}

	sess := session.New()
	api := newAPIClient(c, sess, logger)

	return &App{
		config:  c,
		log:     logger,
		db:      db,
		session: sess,
		auth:    services.NewAuthService(api, sess, db, logger),
		notes:   store.New(api, logger),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,

		gatherer: prometheus.DefaultGatherer,
	}, nil
}

// newAPIClient builds the notes service client selected by c.
func newAPIClient(c *config.Config, tokens client.TokenSource, log logging.Logger) client.Client {
	if c.UseMock {
		latency := client.Latency{}
		if c.MockLatency {
			latency = client.DefaultLatency
		}
		return client.NewMockClient(client.WithLatency(latency))
	}

	opts := []client.Option{client.WithTimeout(c.RequestTimeout)}
	if c.HTTPDebug {
		opts = append(opts, client.WithDebugLogging(log))
	}
	return client.NewHTTPClient(c.ServerBaseURL, tokens, opts...)
}

// logLevel is the configured level, lowered to debug when HTTP debugging is
// on so that request logs are not filtered out.
func logLevel(c *config.Config) string {
	if c.HTTPDebug {
		return "debug"
	}
	return c.LogLevel
}

// Run restores a persisted session, then serves the REPL until the user
// exits or input ends. Resources are released on return.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)

	a.printf("Welcome to gophnotes (type 'help' for commands)")
	if a.config.UseMock {
		a.printf("Running against the in-memory mock service")
	}

	ok, err := a.auth.Restore(ctx)
	if err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	}
	if ok {
		a.printf("Signed in as %s", a.session.User().Email)
		_ = a.Refresh(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Stats prints how many calls the notes service client made in this
// process, by operation and outcome.
func (a *App) Stats(ctx context.Context) error {
	stats, err := client.RequestStats(a.gatherer)
	if err != nil {
		return a.fail(err)
	}
	if len(stats) == 0 {
		a.printf("No requests yet")
		return nil
	}
	writeRequestStats(a.out, stats)
	return nil
}

// Close releases the service client and the local database.
func (a *App) Close(ctx context.Context) {
	if err := a.auth.Close(ctx); err != nil {
		a.log.Warn(ctx, "closing client", "error", err)
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	if u := a.session.User(); u != nil && a.session.IsAuthenticated() {
		return u.Email
	}
	return "guest"
}

// printf writes one line of user feedback.
func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

// fail reports err to the user. It returns err for the REPL to discard.
func (a *App) fail(err error) error {
	a.printf("Error: %s", client.Message(err))
	return err
}
