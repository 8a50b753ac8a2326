package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/micronotes/internal/buildinfo"
	"github.com/dmitrijs2005/micronotes/internal/client/config"
	"github.com/dmitrijs2005/micronotes/internal/client/models"
	"github.com/dmitrijs2005/micronotes/internal/client/services"
	"github.com/dmitrijs2005/micronotes/internal/devproxy"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command. Without a subcommand it starts
// the REPL.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "micronotes",
		Short: "Micro Notes terminal client",
		Long: `A terminal client for the Micro Notes services.

Sign in once; the access token is kept in a local database and reused by
later runs until you log out.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}

	config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(newReplCommand())
	cmd.AddCommand(newLoginCommand())
	cmd.AddCommand(newSignupCommand())
	cmd.AddCommand(newLogoutCommand())
	cmd.AddCommand(newNotesCommand())
	cmd.AddCommand(newStatusCommand())
	cmd.AddCommand(newProxyCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive shell (default)",
		Args:  cobra.NoArgs,
		RunE:  runInteractive,
	}
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *App) error {
		a.Run(ctx)
		return nil
	})
}

func newLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				return a.Login(ctx)
			})
		},
	}
}

func newSignupCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "signup",
		Aliases: []string{"register"},
		Short:   "Create an account and sign in",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				return a.Signup(ctx)
			})
		},
	}
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				return a.Logout(ctx)
			})
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session and the stored token claims",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				_ = a.session.Hydrate(ctx)
				return a.Status(ctx)
			})
		},
	}
}

func newNotesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage notes without the interactive shell",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"l"},
		Short:   "List notes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, a *App) error {
				a.render()
				return nil
			})
		},
	})

	var title, body string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, a *App) error {
				return a.submitForm(ctx, &NoteForm{Title: title, Body: body})
			})
		},
	}
	add.Flags().StringVar(&title, "title", "", "note title")
	add.Flags().StringVar(&body, "body", "", "note body")
	cmd.AddCommand(add)

	var newTitle, newBody string
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title or the body of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			field, value, err := editTarget(cmd, newTitle, newBody)
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, a *App) error {
				return a.editNote(ctx, id, field, value)
			})
		},
	}
	edit.Flags().StringVar(&newTitle, "title", "", "new title")
	edit.Flags().StringVar(&newBody, "body", "", "new body")
	cmd.AddCommand(edit)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, a *App) error {
				return a.deleteNote(ctx, id)
			})
		},
	})

	return cmd
}

// editTarget picks the single field set on the command line.
func editTarget(cmd *cobra.Command, title, body string) (Field, string, error) {
	titleSet, bodySet := cmd.Flags().Changed("title"), cmd.Flags().Changed("body")
	switch {
	case titleSet && !bodySet:
		return FieldTitle, title, nil
	case bodySet && !titleSet:
		return FieldBody, body, nil
	}
	return "", "", fmt.Errorf("set exactly one of --title or --body: %w", models.ErrInvalidPatch)
}

func newProxyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "proxy",
		Short: "Run the development reverse proxy",
		Long: `Serve /api/users/* and /api/notes/* on one address and forward them,
without the prefix, to the Users and Notes services.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			logger, closer, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer.Close()
			}

			srv := devproxy.NewServer(cfg.ProxyAddr, cfg.UsersUpstream, cfg.NotesUpstream, logger)
			fmt.Fprintf(cmd.OutOrStdout(), "Dev proxy listening on %s (users -> %s, notes -> %s)\n",
				cfg.ProxyAddr, cfg.UsersUpstream, cfg.NotesUpstream)
			return srv.Run(commandContext(cmd))
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}

// withApp loads the config, builds the App and closes it after fn.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *App) error) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	a, err := NewApp(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

// withSession is withApp for commands that need a signed-in session.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, a *App) error) error {
	return withApp(cmd, func(ctx context.Context, a *App) error {
		if err := a.restore(ctx); err != nil {
			return err
		}
		return fn(ctx, a)
	})
}

// restore hydrates the session and requires it to be signed in.
func (a *App) restore(ctx context.Context) error {
	if err := a.session.Hydrate(ctx); err != nil {
		a.render()
		return err
	}
	if !a.isLoggedIn() {
		a.report(services.ErrNotAuthenticated)
		return services.ErrNotAuthenticated
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage), services.IsValidation(err):
		return 2
	}
	return 1
}
