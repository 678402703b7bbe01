package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed session lifetime. Tokens are never refreshed; the
// client simply logs in again after expiry.
const TokenTTL = 24 * time.Hour

// RoleUser is the only role issued. There is no multi-user authorization
// model behind the shared access token.
const RoleUser = "user"

// Claims is the verified content of a session token.
type Claims struct {
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec signs and verifies session tokens. Verification is fully stateless:
// a token is valid iff its signature checks out against the current secret
// and it has not expired.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Issue creates a signed token for the given role with a fixed 24h expiry.
func (c *Codec) Issue(role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks signature and expiry. Any failure reports ok=false; callers
// treat an invalid token identically to no session at all. A codec with no
// secret rejects every token: an unset JWT_SECRET must fail closed, never
// verify against the empty key.
func (c *Codec) Verify(tokenString string) (*Claims, bool) {
	if len(c.secret) == 0 {
		return nil, false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}

	role, ok := mapClaims["role"].(string)
	if !ok {
		return nil, false
	}

	claims := &Claims{Role: role}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	return claims, true
}
