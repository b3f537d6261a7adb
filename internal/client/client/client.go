package client

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// Client is the contract of the notes service.
//
// UpdateNote and DeleteNote return no entity: the service confirms them with
// an empty data payload, so callers compute the new updatedAt themselves.
type Client interface {
	Login(ctx context.Context, creds models.Credentials) (string, error)
	Register(ctx context.Context, creds models.Credentials) (*models.User, error)
	Refresh(ctx context.Context, token string) (string, error)

	ListNotes(ctx context.Context) ([]models.Note, error)
	GetNote(ctx context.Context, id string) (*models.Note, error)
	CreateNote(ctx context.Context, in models.NoteInput) (*models.Note, error)
	UpdateNote(ctx context.Context, id string, in models.NoteInput) error
	DeleteNote(ctx context.Context, id string) error

	Close() error
}

// TokenSource yields the bearer token for outbound requests, "" when there is none.
// The session store implements it.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }
