package cli

import (
	"context"
	"strings"
)

// AddFunc is the add-note intent. A nil error means the note was created.
type AddFunc func(ctx context.Context, title, body string) error

// NoteForm holds the staged title and body of a new note.
type NoteForm struct {
	Title string
	Body  string
}

// Submit trims both fields and passes them to add. Blank input is ignored:
// add is not called and submitted is false. Both fields are cleared only
// when add succeeds; on failure they stay as typed.
func (f *NoteForm) Submit(ctx context.Context, add AddFunc) (submitted bool, err error) {
	title, body := strings.TrimSpace(f.Title), strings.TrimSpace(f.Body)
	if title == "" || body == "" {
		return false, nil
	}

	if err := add(ctx, title, body); err != nil {
		return true, err
	}

	f.Title, f.Body = "", ""
	return true, nil
}
