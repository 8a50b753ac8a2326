package cli

import (
	"context"
	"fmt"
)

// getPassword is an indirection used to facilitate testing.
var getPassword = GetPassword

// Signup prompts for an email and password, creates the account and signs
// in with it. The outcome is shown by the rendered view.
func (a *App) Signup(ctx context.Context) error {
	email, password, err := a.promptCredentials()
	if err != nil {
		return err
	}

	err = a.session.Signup(ctx, email, password)
	a.render()
	return err
}

// Login prompts for credentials and signs in. The email prompt is prefilled
// from config.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.promptCredentials()
	if err != nil {
		return err
	}

	err = a.session.Login(ctx, email, password)
	a.render()
	return err
}

// Logout forgets the stored token together with the loaded notes.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.form = NoteForm{}
	fmt.Fprintln(a.out, "Logged out.")
	a.render()
	return nil
}

func (a *App) promptCredentials() (string, string, error) {
	email, err := GetTextWithDefault(a.reader, "Enter email", a.config.DefaultEmail, a.out)
	if err != nil {
		return "", "", err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return "", "", err
	}
	return email, password, nil
}
