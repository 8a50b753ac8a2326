// Package client contains the client-side building blocks that talk to the
// Micro Notes backend and keep local state.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     the identity namespace (Signup, Login, Me) and the note namespace
//     (ListNotes, CreateNote, UpdateNote, DeleteNote).
//  2. A concrete REST implementation (see HTTPClient). Identity and note
//     calls go to two independent base URLs. A round tripper injects the
//     bearer token read from a credentials.Store at request time and
//     defaults the JSON content type for requests with a body.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database with embedded goose migrations.
//
// # Error Handling
//
// A non-2xx response yields *RequestError whose message is, in order of
// preference, the raw response body, the status text, or "HTTP <code>".
// A 2xx body that is not valid JSON yields *ParseError. A 204 response is
// "no content" and is never decoded. Network failures wrap ErrUnavailable.
// 401 and 403 responses match ErrUnauthorized with errors.Is.
//
// All operations accept context.Context and honor cancellation.
package client
