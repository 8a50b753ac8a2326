package client

import (
	"context"

	"github.com/dmitrijs2005/micronotes/internal/client/models"
)

// Client is the API surface of the Users and Notes services.
type Client interface {
	Signup(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.AuthToken, error)
	Me(ctx context.Context) (*models.User, error)

	ListNotes(ctx context.Context) ([]models.Note, error)
	CreateNote(ctx context.Context, title, body string) (*models.Note, error)
	// UpdateNote returns (nil, nil) when the server answers 204.
	UpdateNote(ctx context.Context, id models.NoteID, patch models.NotePatch) (*models.Note, error)
	DeleteNote(ctx context.Context, id models.NoteID) error
}
