package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/micronotes/internal/client/models"
	"github.com/dmitrijs2005/micronotes/internal/client/services"
)

var errUsage = errors.New("usage")

// AddNote prompts for a title and a body. After a failed add the previous
// input is offered again, since the form keeps it.
func (a *App) AddNote(ctx context.Context) error {
	title, err := GetTextWithDefault(a.reader, "Title", a.form.Title, a.out)
	if err != nil {
		return err
	}
	a.form.Title = title

	prompt := "Body"
	if a.form.Body != "" {
		prompt = "Body (an empty line keeps the previous body)"
	}
	body, err := GetMultiline(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if body != "" {
		a.form.Body = body
	}

	return a.submitForm(ctx, &a.form)
}

func (a *App) submitForm(ctx context.Context, form *NoteForm) error {
	submitted, err := form.Submit(ctx, a.session.AddNote)
	if !submitted {
		fmt.Fprintln(a.out, "Title and body are required.")
		return services.ErrBlankNote
	}
	a.report(err)
	a.render()
	return err
}

// EditNote handles "edit <id> title|body": it reads the new value and
// commits it as a single-field patch.
func (a *App) EditNote(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: edit <id> title|body")
		return errUsage
	}
	id, err := parseNoteID(args[0])
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	field, err := ParseField(args[1])
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	if n, ok := a.findNote(id); ok {
		current := n.Title
		if field == FieldBody {
			current = n.Body
		}
		fmt.Fprintf(a.out, "Current %s: %s\n", field, current)
	}

	var value string
	if field == FieldBody {
		value, err = GetMultiline(a.reader, "New body", a.out)
	} else {
		value, err = GetSimpleText(a.reader, "New title", a.out)
	}
	if err != nil {
		return err
	}

	return a.editNote(ctx, id, field, value)
}

func (a *App) editNote(ctx context.Context, id models.NoteID, field Field, value string) error {
	editor := NewNoteEditor(id)
	editor.Stage(field, value)

	err := editor.Commit(ctx, a.session.EditNote)
	a.report(err)
	a.render()
	return err
}

// DeleteNote handles "delete <id>".
func (a *App) DeleteNote(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return errUsage
	}
	id, err := parseNoteID(args[0])
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	return a.deleteNote(ctx, id)
}

func (a *App) deleteNote(ctx context.Context, id models.NoteID) error {
	err := a.session.DeleteNote(ctx, id)
	a.report(err)
	a.render()
	return err
}

// List reloads the notes from the server and shows them.
func (a *App) List(ctx context.Context) error {
	err := a.session.Reload(ctx)
	a.report(err)
	a.render()
	return err
}

// Show prints the current view without contacting the server.
func (a *App) Show(ctx context.Context) error {
	a.render()
	return nil
}

func (a *App) findNote(id models.NoteID) (models.Note, bool) {
	for _, n := range a.session.View().Notes {
		if n.ID == id {
			return n, true
		}
	}
	return models.Note{}, false
}

func parseNoteID(s string) (models.NoteID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", s)
	}
	return models.NoteID(id), nil
}
