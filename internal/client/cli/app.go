package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/micronotes/internal/client/client"
	"github.com/dmitrijs2005/micronotes/internal/client/config"
	"github.com/dmitrijs2005/micronotes/internal/client/credentials"
	"github.com/dmitrijs2005/micronotes/internal/client/services"
	"github.com/dmitrijs2005/micronotes/internal/filex"
	"github.com/dmitrijs2005/micronotes/internal/logging"
)

type App struct {
	config  *config.Config
	session services.SessionService
	tokens  credentials.Store
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	closers []io.Closer

	// form survives a failed add so the input can be resubmitted.
	form NoteForm
}

// NewApp opens the local database in cfg.DataDir and wires the token store,
// the API client and the session. Logs go to errOut and, when configured, to
// cfg.LogFile. The caller must Close the app.
func NewApp(ctx context.Context, cfg *config.Config, in io.Reader, out, errOut io.Writer) (*App, error) {
	logger, logCloser, err := newLogger(cfg, errOut)
	if err != nil {
		return nil, err
	}

	dataDir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		closeAll(logCloser)
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dataDir

	db, err := client.InitDatabase(ctx, cfg.DatabasePath())
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		closeAll(logCloser)
		return nil, err
	}

	tokens := credentials.NewSQLiteStore(db)
	api := client.NewHTTPClient(cfg.UsersBaseURL, cfg.NotesBaseURL, tokens,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(logger.With("module", "api")),
	)
	session := services.NewSession(api, tokens, logger.With("module", "session"))

	a := newApp(cfg, session, tokens, logger, in, out)
	a.closers = append(a.closers, db)
	if logCloser != nil {
		a.closers = append(a.closers, logCloser)
	}
	return a, nil
}

func newApp(cfg *config.Config, session services.SessionService, tokens credentials.Store, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config:  cfg,
		session: session,
		tokens:  tokens,
		logger:  logger,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Close releases the database and the log file.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func closeAll(cs ...io.Closer) {
	for _, c := range cs {
		if c != nil {
			_ = c.Close()
		}
	}
}

// Run restores the previous session, shows it and starts the REPL. It
// returns when the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Micro Notes (type 'help' for commands)")

	_ = a.session.Hydrate(ctx)
	a.render()

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.session.View().Authenticated()
}

func (a *App) getStatus() string {
	v := a.session.View()
	if !v.Authenticated() {
		return ""
	}
	return fmt.Sprintf("(%s)", v.User.Email)
}

func (a *App) render() {
	Render(a.out, a.session.View())
}

// report prints errors that never reach the banner. Banner errors are shown
// by the next render.
func (a *App) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, services.ErrNotAuthenticated):
		fmt.Fprintln(a.out, "Log in first.")
	case services.IsValidation(err):
		fmt.Fprintln(a.out, err.Error())
	}
}
