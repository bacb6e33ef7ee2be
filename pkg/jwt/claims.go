package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents JWT custom claims. Email is the identity records are
// listed for.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
