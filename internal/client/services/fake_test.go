package services

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"

	"github.com/dmitrijs2005/micronotes/internal/client/client"
	"github.com/dmitrijs2005/micronotes/internal/client/credentials"
	"github.com/dmitrijs2005/micronotes/internal/client/models"
)

// fakeBackend is an in-memory stand-in for both services. It checks the
// bearer token the same way the real API client would send it: by reading
// the credential store at call time.
type fakeBackend struct {
	mu sync.Mutex

	tokens   credentials.Store
	accounts map[string]string // email -> password
	users    map[string]int64
	notes    map[models.NoteID]models.Note
	nextID   models.NoteID

	// errs forces a method to fail before doing anything.
	errs map[string]error
	// noContent makes UpdateNote answer like a 204.
	noContent bool

	calls     map[string]int
	lastPatch models.NotePatch
}

func newFakeBackend(tokens credentials.Store) *fakeBackend {
	return &fakeBackend{
		tokens:   tokens,
		accounts: map[string]string{"harry@example.com": "harry123"},
		users:    map[string]int64{"harry@example.com": 1},
		notes:    map[models.NoteID]models.Note{},
		nextID:   1,
		errs:     map[string]error{},
		calls:    map[string]int{},
	}
}

func reqErr(code int, msg string) error {
	return &client.RequestError{StatusCode: code, Message: msg}
}

func (f *fakeBackend) enter(method string) error {
	f.calls[method]++
	return f.errs[method]
}

func (f *fakeBackend) seed(ns ...models.Note) {
	for _, n := range ns {
		f.notes[n.ID] = n
		if n.ID >= f.nextID {
			f.nextID = n.ID + 1
		}
	}
}

func (f *fakeBackend) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, c := range f.calls {
		total += c
	}
	return total
}

func (f *fakeBackend) currentUser(ctx context.Context) (string, error) {
	tok, ok, err := f.tokens.Get(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", reqErr(http.StatusUnauthorized, "missing token")
	}
	for email := range f.users {
		if tok == "token-"+email {
			return email, nil
		}
	}
	return "", reqErr(http.StatusUnauthorized, "invalid token")
}

func (f *fakeBackend) Signup(ctx context.Context, email, password string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("Signup"); err != nil {
		return nil, err
	}
	if _, ok := f.accounts[email]; ok {
		return nil, reqErr(http.StatusConflict, "email already registered")
	}
	f.accounts[email] = password
	f.users[email] = int64(len(f.users) + 1)
	return &models.User{ID: f.users[email], Email: email}, nil
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (*models.AuthToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("Login"); err != nil {
		return nil, err
	}
	if pw, ok := f.accounts[email]; !ok || pw != password {
		return nil, reqErr(http.StatusUnauthorized, "invalid credentials")
	}
	return &models.AuthToken{
		AccessToken: "token-" + email,
		User:        &models.User{ID: f.users[email], Email: email},
	}, nil
}

func (f *fakeBackend) Me(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("Me"); err != nil {
		return nil, err
	}
	email, err := f.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return &models.User{ID: f.users[email], Email: email}, nil
}

func (f *fakeBackend) ListNotes(ctx context.Context) ([]models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListNotes"); err != nil {
		return nil, err
	}
	if _, err := f.currentUser(ctx); err != nil {
		return nil, err
	}
	out := make([]models.Note, 0, len(f.notes))
	for _, n := range f.notes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeBackend) CreateNote(ctx context.Context, title, body string) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateNote"); err != nil {
		return nil, err
	}
	if _, err := f.currentUser(ctx); err != nil {
		return nil, err
	}
	n := models.Note{ID: f.nextID, Title: title, Body: body}
	f.nextID++
	f.notes[n.ID] = n
	return &n, nil
}

func (f *fakeBackend) UpdateNote(ctx context.Context, id models.NoteID, patch models.NotePatch) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateNote"); err != nil {
		return nil, err
	}
	f.lastPatch = patch
	if _, err := f.currentUser(ctx); err != nil {
		return nil, err
	}
	n, ok := f.notes[id]
	if !ok {
		return nil, reqErr(http.StatusNotFound, "note not found")
	}
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Body != nil {
		n.Body = *patch.Body
	}
	f.notes[id] = n
	if f.noContent {
		return nil, nil
	}
	return &n, nil
}

func (f *fakeBackend) DeleteNote(ctx context.Context, id models.NoteID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteNote"); err != nil {
		return err
	}
	if _, err := f.currentUser(ctx); err != nil {
		return err
	}
	if _, ok := f.notes[id]; !ok {
		return reqErr(http.StatusNotFound, "note not found")
	}
	delete(f.notes, id)
	return nil
}

// flakyStore wraps a MemoryStore and fails Set or Clear on demand.
type flakyStore struct {
	*credentials.MemoryStore
	setErr   error
	clearErr error
}

func (s *flakyStore) Set(ctx context.Context, token string) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.MemoryStore.Set(ctx, token)
}

func (s *flakyStore) Clear(ctx context.Context) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	return s.MemoryStore.Clear(ctx)
}

var errDisk = errors.New("disk full")
