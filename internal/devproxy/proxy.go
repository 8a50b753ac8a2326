// Package devproxy is a development reverse proxy that puts the Users and
// Notes services behind one origin, under /api/users and /api/notes.
package devproxy

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/micronotes/internal/logging"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"
)

const (
	UsersPrefix = "/api/users"
	NotesPrefix = "/api/notes"
)

type Server struct {
	address string
	app     *fiber.App
	logger  logging.Logger
}

// NewServer builds the proxy. Requests under UsersPrefix go to usersUpstream
// and requests under NotesPrefix go to notesUpstream, with the prefix removed
// and the query string kept.
func NewServer(address, usersUpstream, notesUpstream string, l logging.Logger) *Server {
	s := &Server{
		address: address,
		logger:  l.With("module", "devproxy"),
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(s.accessLog)
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.All(UsersPrefix, forward(usersUpstream))
	app.All(UsersPrefix+"/*", forward(usersUpstream))
	app.All(NotesPrefix, forward(notesUpstream))
	app.All(NotesPrefix+"/*", forward(notesUpstream))

	s.app = app
	return s
}

// App exposes the underlying fiber app, mostly for app.Test.
func (s *Server) App() *fiber.App { return s.app }

// Run serves until ctx is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			s.logger.Info(context.Background(), "Stopping dev proxy...")
			_ = s.app.Shutdown()
		case <-done:
		}
	}()

	s.logger.Info(ctx, "Starting dev proxy", "address", s.address)

	return s.app.Listen(s.address)
}

func forward(upstream string) fiber.Handler {
	upstream = strings.TrimRight(upstream, "/")
	return func(c *fiber.Ctx) error {
		target := upstream + "/" + c.Params("*")
		if q := c.Request().URI().QueryString(); len(q) > 0 {
			target += "?" + string(q)
		}
		if err := proxy.Do(c, target); err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return nil
	}
}

func (s *Server) accessLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.logger.Debug(c.UserContext(), "proxied",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
	)
	return err
}
