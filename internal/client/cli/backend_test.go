package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/micronotes/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var tokenExpiry = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

// backend fakes the Users and Notes services on two separate servers.
type backend struct {
	mu         sync.Mutex
	token      string
	notes      []models.Note
	nextID     models.NoteID
	failCreate  bool
	emptyCreate bool
	creates     int
	lastPatch   string

	users    *httptest.Server
	notesSrv *httptest.Server
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "1",
		"email": "harry@example.com",
		"exp":   tokenExpiry.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	b := &backend{token: tok, nextID: 1}

	users := http.NewServeMux()
	users.HandleFunc("POST /auth/login", b.login)
	users.HandleFunc("POST /auth/signup", b.signup)
	users.HandleFunc("GET /auth/me", b.authed(b.me))

	notes := http.NewServeMux()
	notes.HandleFunc("GET /notes", b.authed(b.list))
	notes.HandleFunc("POST /notes", b.authed(b.create))
	notes.HandleFunc("PUT /notes/{id}", b.authed(b.update))
	notes.HandleFunc("DELETE /notes/{id}", b.authed(b.remove))

	b.users = httptest.NewServer(users)
	b.notesSrv = httptest.NewServer(notes)
	t.Cleanup(b.users.Close)
	t.Cleanup(b.notesSrv.Close)
	return b
}

func (b *backend) authed(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+b.token {
			textError(w, "invalid token", http.StatusUnauthorized)
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		h(w, r)
	}
}

// textError answers with a plain text body and no trailing newline.
func textError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *backend) login(w http.ResponseWriter, r *http.Request) {
	var c models.Credentials
	_ = json.NewDecoder(r.Body).Decode(&c)
	if c.Email != "harry@example.com" || c.Password != "harry123" {
		textError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	reply(w, http.StatusOK, models.AuthToken{
		AccessToken: b.token,
		User:        &models.User{ID: 1, Email: c.Email},
	})
}

func (b *backend) signup(w http.ResponseWriter, r *http.Request) {
	var c models.Credentials
	_ = json.NewDecoder(r.Body).Decode(&c)
	if c.Email == "harry@example.com" {
		textError(w, "email already registered", http.StatusConflict)
		return
	}
	reply(w, http.StatusCreated, models.User{ID: 2, Email: c.Email})
}

func (b *backend) me(w http.ResponseWriter, r *http.Request) {
	reply(w, http.StatusOK, models.User{ID: 1, Email: "harry@example.com"})
}

func (b *backend) list(w http.ResponseWriter, r *http.Request) {
	out := append([]models.Note{}, b.notes...)
	reply(w, http.StatusOK, out)
}

func (b *backend) create(w http.ResponseWriter, r *http.Request) {
	b.creates++
	if b.failCreate {
		textError(w, "notes service is read-only", http.StatusServiceUnavailable)
		return
	}
	if b.emptyCreate {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	var nn models.NewNote
	_ = json.NewDecoder(r.Body).Decode(&nn)
	n := models.Note{ID: b.nextID, Title: nn.Title, Body: nn.Body}
	b.nextID++
	b.notes = append([]models.Note{n}, b.notes...)
	reply(w, http.StatusCreated, n)
}

func (b *backend) find(r *http.Request) int {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	for i, n := range b.notes {
		if n.ID == models.NoteID(id) {
			return i
		}
	}
	return -1
}

func (b *backend) update(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	b.lastPatch = string(raw)
	i := b.find(r)
	if i < 0 {
		textError(w, "note not found", http.StatusNotFound)
		return
	}
	var p models.NotePatch
	_ = json.Unmarshal(raw, &p)
	if p.Title != nil {
		b.notes[i].Title = *p.Title
	}
	if p.Body != nil {
		b.notes[i].Body = *p.Body
	}
	reply(w, http.StatusOK, b.notes[i])
}

func (b *backend) remove(w http.ResponseWriter, r *http.Request) {
	i := b.find(r)
	if i < 0 {
		textError(w, "note not found", http.StatusNotFound)
		return
	}
	b.notes = append(b.notes[:i], b.notes[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}
