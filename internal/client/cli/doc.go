// Package cli provides the interactive Micro Notes command-line client.
//
// It wires configuration, the local token database, the API client and the
// session, and renders the session state in a terminal. The REPL is the
// default front end; the same actions are also exposed as one-shot cobra
// subcommands (see NewRootCommand).
//
// Presentation pieces:
//   - NoteForm stages a new note and only clears after a successful add
//   - NoteEditor stages a single-field edit and sends it on Commit
//   - Render prints the header, the error banner and the note list
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
