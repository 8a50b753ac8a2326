package credentials

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the informational part of an access token.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// Inspect decodes token claims WITHOUT verifying the signature. The result
// is for display only; validity is decided by the server.
func Inspect(token string) (Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return Claims{}, fmt.Errorf("decode token: %w", err)
	}

	var c Claims
	c.Subject, _ = mc.GetSubject()
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	if email, ok := mc["email"].(string); ok {
		c.Email = email
	}
	return c, nil
}
