// Package models defines the records exchanged with the Users and Notes services.
package models

// User is the identity projection returned by the Users service.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Credentials is the body of signup and login requests.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthToken is the login response.
type AuthToken struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user,omitempty"`
}
