package models

import "errors"

// NoteID is the server-assigned identity of a note.
type NoteID int64

type Note struct {
	ID    NoteID `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NewNote is the body of a create request.
type NewNote struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ErrInvalidPatch is returned for a patch that does not carry exactly one field.
var ErrInvalidPatch = errors.New("patch must change exactly one field")

// NotePatch is a partial update. Exactly one of Title or Body is set; an
// empty string is a legitimate value, so presence is tracked by pointer.
type NotePatch struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
}

func TitlePatch(title string) NotePatch { return NotePatch{Title: &title} }

func BodyPatch(body string) NotePatch { return NotePatch{Body: &body} }

func (p NotePatch) Validate() error {
	if (p.Title == nil) == (p.Body == nil) {
		return ErrInvalidPatch
	}
	return nil
}
