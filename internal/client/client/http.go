package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/go-resty/resty/v2"
)

// HTTPClient implements Client over the REST contract of the notes service.
type HTTPClient struct {
	rest *resty.Client
}

// Option configures an HTTPClient in NewHTTPClient.
type Option func(*HTTPClient)

// WithTimeout bounds each request, connection setup and body read included.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.rest.SetTimeout(d)
		}
	}
}

// WithDebugLogging logs every request and response (method, URL, status,
// duration) at debug level through log. Bodies are not logged.
func WithDebugLogging(log logging.Logger) Option {
	return func(c *HTTPClient) {
		log = log.With("component", "http")
		c.rest.OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
			log.Debug(r.Request.Context(), "HTTP response",
				"method", r.Request.Method,
				"url", r.Request.URL,
				"status_code", r.StatusCode(),
				"took", r.Time(),
			)
			return nil
		})
		c.rest.OnError(func(r *resty.Request, err error) {
			log.Debug(r.Context(), "HTTP request failed", "method", r.Method, "url", r.URL, "error", err)
		})
	}
}

// NewHTTPClient returns a client for the service at baseURL. The bearer token
// is read from tokens before every request; tokens may be nil.
func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		rest: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json").
			SetTimeout(30 * time.Second).
			SetRetryCount(0),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.rest.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if tokens == nil {
			return nil
		}
		if tok := tokens.Token(); tok != "" {
			r.SetHeader(common.AuthorizationHeaderName, "Bearer "+tok)
		}
		return nil
	})
	return c
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (string, error) {
	data, err := call[tokenData](ctx, c, opLogin, http.MethodPost, "/auth/login", "", creds)
	if err != nil {
		return "", err
	}
	if data.Token == "" {
		return "", opLogin.fail("Login response carried no token")
	}
	return data.Token, nil
}

func (c *HTTPClient) Register(ctx context.Context, creds models.Credentials) (*models.User, error) {
	user, err := call[models.User](ctx, c, opRegister, http.MethodPost, "/auth/register", "", creds)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Refresh(ctx context.Context, token string) (string, error) {
	data, err := call[tokenData](ctx, c, opRefresh, http.MethodPost, "/auth/refresh", "", tokenData{Token: token})
	if err != nil {
		return "", err
	}
	if data.Token == "" {
		return "", opRefresh.fail("Refresh response carried no token")
	}
	return data.Token, nil
}

func (c *HTTPClient) ListNotes(ctx context.Context) ([]models.Note, error) {
	notes, err := call[[]models.Note](ctx, c, opList, http.MethodGet, "/notes", "", nil)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

func (c *HTTPClient) GetNote(ctx context.Context, id string) (*models.Note, error) {
	n, err := call[models.Note](ctx, c, opGet, http.MethodGet, "/notes/{id}", id, nil)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *HTTPClient) CreateNote(ctx context.Context, in models.NoteInput) (*models.Note, error) {
	n, err := call[models.Note](ctx, c, opCreate, http.MethodPost, "/notes", "", in)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *HTTPClient) UpdateNote(ctx context.Context, id string, in models.NoteInput) error {
	_, err := call[struct{}](ctx, c, opUpdate, http.MethodPut, "/notes/{id}", id, in)
	return err
}

func (c *HTTPClient) DeleteNote(ctx context.Context, id string) error {
	_, err := call[struct{}](ctx, c, opDelete, http.MethodDelete, "/notes/{id}", id, nil)
	return err
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.rest.GetClient().CloseIdleConnections()
	return nil
}

// isNotFoundMessage reports whether a failure envelope says the note does
// not exist. Services signal a missing note either with HTTP 404 or with
// this message under any status.
func isNotFoundMessage(msg string) bool {
	return strings.EqualFold(strings.TrimSpace(msg), notFoundMessage)
}

// call performs one request and maps the outcome onto T or a classified *Error.
func call[T any](ctx context.Context, c *HTTPClient, op operation, method, path, id string, body any) (T, error) {
	var zero T

	req := c.rest.R().SetContext(ctx)
	if id != "" {
		req.SetPathParam("id", id)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		observe(op, outcomeNetwork)
		return zero, networkError(op.fallback, err)
	}

	env, decodeErr := decodeEnvelope[T](resp.Body())

	if op.byID && resp.StatusCode() == http.StatusNotFound {
		observe(op, outcomeNotFound)
		return zero, op.notFound(env.Message)
	}
	if decodeErr != nil {
		observe(op, outcomeFailed)
		if resp.IsError() {
			return zero, op.fail("")
		}
		return zero, &Error{Kind: op.kind, Message: op.fallback + ": malformed response", Err: decodeErr}
	}

	res := env.result()
	if op.byID && !res.OK() && isNotFoundMessage(res.Message()) {
		observe(op, outcomeNotFound)
		return zero, op.notFound(res.Message())
	}
	if resp.IsError() || !res.OK() {
		observe(op, outcomeFailed)
		return zero, op.fail(res.Message())
	}

	data, _ := res.Unwrap()
	observe(op, outcomeOK)
	return data, nil
}
