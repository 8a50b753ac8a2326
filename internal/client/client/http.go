package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/micronotes/internal/client/credentials"
	"github.com/dmitrijs2005/micronotes/internal/client/models"
	"github.com/dmitrijs2005/micronotes/internal/common"
	"github.com/dmitrijs2005/micronotes/internal/logging"
	"github.com/google/uuid"
)

const (
	signupPath = "/auth/signup"
	loginPath  = "/auth/login"
	mePath     = "/auth/me"
	notesPath  = "/notes"
)

// HTTPClient talks REST to the two services. Identity calls use usersBase,
// note calls use notesBase; the two are never derived from each other.
type HTTPClient struct {
	usersBase string
	notesBase string
	http      *http.Client
	logger    logging.Logger
}

type Option func(*HTTPClient)

// WithTimeout bounds every request, body included.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

func NewHTTPClient(usersBaseURL, notesBaseURL string, tokens credentials.Store, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		usersBase: strings.TrimRight(usersBaseURL, "/"),
		notesBase: strings.TrimRight(notesBaseURL, "/"),
		http: &http.Client{
			Transport: &bearerTransport{tokens: tokens, next: http.DefaultTransport},
		},
		logger: logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *HTTPClient) Signup(ctx context.Context, email, password string) (*models.User, error) {
	var u models.User
	if err := c.fetch(ctx, http.MethodPost, c.usersBase+signupPath, models.Credentials{Email: email, Password: password}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthToken, error) {
	var tok models.AuthToken
	if err := c.fetch(ctx, http.MethodPost, c.usersBase+loginPath, models.Credentials{Email: email, Password: password}, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.fetch(ctx, http.MethodGet, c.usersBase+mePath, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) ListNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	if _, err := c.do(ctx, http.MethodGet, c.notesBase+notesPath, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *HTTPClient) CreateNote(ctx context.Context, title, body string) (*models.Note, error) {
	var n models.Note
	if err := c.fetch(ctx, http.MethodPost, c.notesBase+notesPath, models.NewNote{Title: title, Body: body}, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *HTTPClient) UpdateNote(ctx context.Context, id models.NoteID, patch models.NotePatch) (*models.Note, error) {
	var n models.Note
	hasBody, err := c.do(ctx, http.MethodPut, c.noteURL(id), patch, &n)
	if err != nil {
		return nil, err
	}
	if !hasBody {
		return nil, nil
	}
	return &n, nil
}

func (c *HTTPClient) DeleteNote(ctx context.Context, id models.NoteID) error {
	_, err := c.do(ctx, http.MethodDelete, c.noteURL(id), nil, nil)
	return err
}

func (c *HTTPClient) noteURL(id models.NoteID) string {
	return fmt.Sprintf("%s%s/%d", c.notesBase, notesPath, id)
}

// fetch is do for endpoints that always answer with a resource: a 204 is a
// ParseError, never a zero value.
func (c *HTTPClient) fetch(ctx context.Context, method, url string, payload any, out any) error {
	hasBody, err := c.do(ctx, method, url, payload, out)
	if err != nil {
		return err
	}
	if !hasBody {
		return &ParseError{Err: errEmptyResponse}
	}
	return nil
}

// do performs one request and decodes a JSON response into out. It reports
// false when the server answered 204 No Content, in which case out is left
// untouched. A nil out still requires a valid JSON body.
func (c *HTTPClient) do(ctx context.Context, method, url string, payload any, out any) (bool, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return false, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeader, requestID)

	log := c.logger.With("method", method, "url", url, "request_id", requestID)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		var te *tokenError
		if errors.As(err, &te) {
			return false, te
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false, err
		}
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request done", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(resp.Body)
		return false, newRequestError(resp.StatusCode, resp.Status, text)
	}

	if resp.StatusCode == http.StatusNoContent {
		return false, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("read response: %w", err)
	}
	if out == nil {
		if !json.Valid(raw) {
			return false, &ParseError{Err: errors.New("body is not valid JSON")}
		}
		return true, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, &ParseError{Err: err}
	}
	return true, nil
}
