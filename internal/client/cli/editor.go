package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/micronotes/internal/client/models"
)

type Field string

const (
	FieldTitle Field = "title"
	FieldBody  Field = "body"
)

func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldTitle, FieldBody:
		return Field(s), nil
	}
	return "", fmt.Errorf("unknown field %q, want title or body", s)
}

// EditFunc is the edit-note intent.
type EditFunc func(ctx context.Context, id models.NoteID, patch models.NotePatch) error

// NoteEditor stages an edit of one field of one note. Nothing is sent while
// typing; Commit is the point where the staged value leaves the editor.
type NoteEditor struct {
	id     models.NoteID
	field  Field
	value  string
	staged bool
}

func NewNoteEditor(id models.NoteID) *NoteEditor {
	return &NoteEditor{id: id}
}

func (e *NoteEditor) StageTitle(title string) { e.stage(FieldTitle, title) }

func (e *NoteEditor) StageBody(body string) { e.stage(FieldBody, body) }

// Stage replaces whatever was staged before.
func (e *NoteEditor) Stage(f Field, value string) { e.stage(f, value) }

func (e *NoteEditor) stage(f Field, value string) {
	e.field, e.value, e.staged = f, value, true
}

// Commit sends the staged field as a patch carrying only that field and
// resets the editor. With nothing staged it does nothing.
func (e *NoteEditor) Commit(ctx context.Context, edit EditFunc) error {
	if !e.staged {
		return nil
	}

	var patch models.NotePatch
	switch e.field {
	case FieldTitle:
		patch = models.TitlePatch(e.value)
	case FieldBody:
		patch = models.BodyPatch(e.value)
	}
	e.staged = false

	return edit(ctx, e.id, patch)
}
