package gatewaytest

import (
	"time"

	"github.com/exoshivam/folio/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

var signingKey = []byte("gatewaytest-secret")

// Token issues an HS256 token for u the way the reference backend does:
// subject is the user id, valid for a day.
func Token(u models.User) string {
	claims := jwt.RegisteredClaims{
		Subject:   u.ID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		panic(err)
	}
	return signed
}
