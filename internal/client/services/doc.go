// Package services contains application services for the Micro Notes client.
//
// Session is the state machine behind every front end: it owns the signed-in
// user, the note collection and the single error banner, and drives the API
// client and the credential store in response to user actions.
package services
