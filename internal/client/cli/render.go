package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/micronotes/internal/client/services"
)

const bodyIndent = "    "

// Render prints the whole view: header, banner, then the note list when
// signed in.
func Render(w io.Writer, v services.View) {
	RenderHeader(w, v)
	RenderBanner(w, v)
	if v.Authenticated() {
		RenderList(w, v)
	}
}

func RenderHeader(w io.Writer, v services.View) {
	if v.Authenticated() {
		fmt.Fprintf(w, "Signed in as %s\n", v.User.Email)
		return
	}
	fmt.Fprintln(w, "Log in or sign up")
}

// RenderBanner prints the error line, or nothing when there is no error.
func RenderBanner(w io.Writer, v services.View) {
	if v.ErrorMessage == "" {
		return
	}
	fmt.Fprintf(w, "Error: %s\n", v.ErrorMessage)
}

func RenderList(w io.Writer, v services.View) {
	if len(v.Notes) == 0 {
		fmt.Fprintln(w, "No notes yet.")
		return
	}
	for _, n := range v.Notes {
		fmt.Fprintf(w, "#%d %s\n", n.ID, n.Title)
		for _, line := range strings.Split(n.Body, "\n") {
			fmt.Fprintln(w, bodyIndent+line)
		}
	}
}
