package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/micronotes/internal/client/credentials"
)

// now is a test seam.
var now = time.Now

type savedAtReader interface {
	SavedAt(ctx context.Context) (time.Time, bool, error)
}

// Status prints the session header and what the stored token claims about
// itself. Claims are decoded without verification.
func (a *App) Status(ctx context.Context) error {
	RenderHeader(a.out, a.session.View())

	token, ok, err := a.tokens.Get(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Token: unreadable (%v)\n", err)
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Token: none")
		return nil
	}
	fmt.Fprintln(a.out, "Token: stored")

	if s, ok := a.tokens.(savedAtReader); ok {
		if at, found, err := s.SavedAt(ctx); err == nil && found {
			fmt.Fprintf(a.out, "Saved at: %s\n", at.UTC().Format(time.RFC3339))
		}
	}

	claims, err := credentials.Inspect(token)
	if err != nil {
		fmt.Fprintln(a.out, "Claims: not a JWT")
		return nil
	}
	if claims.Subject != "" {
		fmt.Fprintf(a.out, "Subject: %s\n", claims.Subject)
	}
	if claims.Email != "" {
		fmt.Fprintf(a.out, "Email: %s\n", claims.Email)
	}
	if !claims.ExpiresAt.IsZero() {
		suffix := ""
		if claims.ExpiresAt.Before(now()) {
			suffix = " (expired)"
		}
		fmt.Fprintf(a.out, "Expires: %s%s\n", claims.ExpiresAt.UTC().Format(time.RFC3339), suffix)
	}
	return nil
}
