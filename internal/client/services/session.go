package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/micronotes/internal/client/client"
	"github.com/dmitrijs2005/micronotes/internal/client/credentials"
	"github.com/dmitrijs2005/micronotes/internal/client/models"
	"github.com/dmitrijs2005/micronotes/internal/client/notes"
	"github.com/dmitrijs2005/micronotes/internal/logging"
)

// SessionService defines the user actions a front end can trigger.
//
// Contract:
//   - every action except Logout clears the error banner before it starts
//     and sets it when it fails; the failure is also returned;
//   - validation errors (ErrBlankNote, ErrInvalidPatch) and
//     ErrNotAuthenticated are returned before any request and leave the
//     banner untouched;
//   - Logout always ends unauthenticated with an empty collection.
type SessionService interface {
	Hydrate(ctx context.Context) error
	Login(ctx context.Context, email, password string) error
	Signup(ctx context.Context, email, password string) error
	Logout(ctx context.Context)
	AddNote(ctx context.Context, title, body string) error
	EditNote(ctx context.Context, id models.NoteID, patch models.NotePatch) error
	DeleteNote(ctx context.Context, id models.NoteID) error
	Reload(ctx context.Context) error
	View() View
}

// View is a snapshot of the session state for rendering.
type View struct {
	User         *models.User
	Notes        []models.Note
	ErrorMessage string
}

func (v View) Authenticated() bool { return v.User != nil }

// Session is the concrete SessionService. State reads and writes are guarded
// by a mutex; actions themselves are not serialized, so when two overlap the
// last response to arrive wins.
type Session struct {
	api    client.Client
	tokens credentials.Store
	logger logging.Logger

	mu     sync.Mutex
	user   *models.User
	notes  notes.Collection
	errMsg string
}

var _ SessionService = (*Session)(nil)

func NewSession(api client.Client, tokens credentials.Store, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Session{api: api, tokens: tokens, logger: logger}
}

// Hydrate restores the session from a stored token. Without a token it does
// nothing. If the identity lookup or the note listing fails the session falls
// back to unauthenticated and shows the error; the token is kept.
func (s *Session) Hydrate(ctx context.Context) error {
	s.clearError()

	_, ok, err := s.tokens.Get(ctx)
	if err != nil {
		return s.fail(ctx, "hydrate", err)
	}
	if !ok {
		return nil
	}

	user, list, err := s.fetchState(ctx)
	if err != nil {
		s.mu.Lock()
		s.user = nil
		s.notes.Clear()
		s.mu.Unlock()
		return s.fail(ctx, "hydrate", err)
	}

	s.commit(user, list)
	s.logger.Info(ctx, "session restored", "email", user.Email, "notes", len(list))
	return nil
}

// Login authenticates, stores the token and loads the user and notes. State
// changes only when every step succeeds; a token stored before a later step
// failed stays stored.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.clearError()
	email = strings.TrimSpace(email)

	if err := s.login(ctx, email, password); err != nil {
		return s.fail(ctx, "login", err)
	}
	return nil
}

// Signup creates the account and then logs in with the same credentials.
// Any failing step only reports its own message.
func (s *Session) Signup(ctx context.Context, email, password string) error {
	s.clearError()
	email = strings.TrimSpace(email)

	if _, err := s.api.Signup(ctx, email, password); err != nil {
		return s.fail(ctx, "signup", err)
	}
	s.logger.Info(ctx, "account created", "email", email)

	if err := s.login(ctx, email, password); err != nil {
		return s.fail(ctx, "signup", err)
	}
	return nil
}

func (s *Session) login(ctx context.Context, email, password string) error {
	tok, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := s.tokens.Set(ctx, tok.AccessToken); err != nil {
		return err
	}

	user, list, err := s.fetchState(ctx)
	if err != nil {
		return err
	}

	s.commit(user, list)
	s.logger.Info(ctx, "signed in", "email", user.Email, "notes", len(list))
	return nil
}

func (s *Session) fetchState(ctx context.Context) (*models.User, []models.Note, error) {
	user, err := s.api.Me(ctx)
	if err != nil {
		return nil, nil, err
	}
	list, err := s.api.ListNotes(ctx)
	if err != nil {
		return nil, nil, err
	}
	return user, list, nil
}

// Logout forgets the token, the user and the notes. A token store failure is
// logged and does not stop the logout.
func (s *Session) Logout(ctx context.Context) {
	if err := s.tokens.Clear(ctx); err != nil {
		s.logger.Error(ctx, "failed to clear token", "error", err)
	}

	s.mu.Lock()
	s.user = nil
	s.notes.Clear()
	s.errMsg = ""
	s.mu.Unlock()

	s.logger.Info(ctx, "signed out")
}

// AddNote creates a note from trimmed title and body and puts the server's
// copy at the front of the collection once the server confirms it.
func (s *Session) AddNote(ctx context.Context, title, body string) error {
	title, body = strings.TrimSpace(title), strings.TrimSpace(body)
	if title == "" || body == "" {
		return ErrBlankNote
	}
	if !s.authenticated() {
		return ErrNotAuthenticated
	}
	s.clearError()

	n, err := s.api.CreateNote(ctx, title, body)
	if err != nil {
		return s.fail(ctx, "add note", err)
	}

	s.mu.Lock()
	s.notes.Prepend(*n)
	s.mu.Unlock()

	s.logger.Debug(ctx, "note created", "id", n.ID)
	return nil
}

// EditNote sends a single-field patch. The stored note is replaced by the
// one the server returns; a response without a body changes nothing.
func (s *Session) EditNote(ctx context.Context, id models.NoteID, patch models.NotePatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	if !s.authenticated() {
		return ErrNotAuthenticated
	}
	s.clearError()

	n, err := s.api.UpdateNote(ctx, id, patch)
	if err != nil {
		return s.fail(ctx, "edit note", err)
	}
	if n == nil {
		s.logger.Debug(ctx, "note updated without content", "id", id)
		return nil
	}

	s.mu.Lock()
	s.notes.Replace(*n)
	s.mu.Unlock()

	s.logger.Debug(ctx, "note updated", "id", n.ID)
	return nil
}

func (s *Session) DeleteNote(ctx context.Context, id models.NoteID) error {
	if !s.authenticated() {
		return ErrNotAuthenticated
	}
	s.clearError()

	if err := s.api.DeleteNote(ctx, id); err != nil {
		return s.fail(ctx, "delete note", err)
	}

	s.mu.Lock()
	s.notes.Remove(id)
	s.mu.Unlock()

	s.logger.Debug(ctx, "note deleted", "id", id)
	return nil
}

// Reload replaces the collection with the server's current list.
func (s *Session) Reload(ctx context.Context) error {
	if !s.authenticated() {
		return ErrNotAuthenticated
	}
	s.clearError()

	list, err := s.api.ListNotes(ctx)
	if err != nil {
		return s.fail(ctx, "reload notes", err)
	}

	s.mu.Lock()
	s.notes.Reset(list)
	s.mu.Unlock()
	return nil
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{Notes: s.notes.All(), ErrorMessage: s.errMsg}
	if s.user != nil {
		u := *s.user
		v.User = &u
	}
	return v
}

func (s *Session) authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *Session) commit(user *models.User, list []models.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.notes.Reset(list)
}

func (s *Session) clearError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
}

// fail puts err on the banner and returns it wrapped with the action name.
func (s *Session) fail(ctx context.Context, action string, err error) error {
	s.mu.Lock()
	s.errMsg = err.Error()
	s.mu.Unlock()

	s.logger.Warn(ctx, action+" failed", "error", err)
	return fmt.Errorf("%s: %w", action, err)
}
