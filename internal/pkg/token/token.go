package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Payload is the wire-level token payload. A refresh token carries a userId;
// an access token carries the refresh token string it was derived from.
type Payload struct {
	UserID       *int64 `json:"userId,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type claims struct {
	Payload
	jwtlib.RegisteredClaims
}

// Service mints and verifies compact HS256-signed tokens. The secret is
// injected at construction; nothing here reads ambient state.
type Service struct {
	secret []byte
}

func New(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

func (s *Service) Create(payload Payload, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		Payload: payload,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return tok.SignedString(s.secret)
}

// Verify returns the decoded payload and true when the token is well-formed,
// correctly signed and unexpired. Any failure yields (Payload{}, false);
// callers treat verification as a gate, never as an exceptional path.
func (s *Service) Verify(tokenStr string) (Payload, bool) {
	tok, err := jwtlib.ParseWithClaims(tokenStr, &claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return Payload{}, false
	}

	c, ok := tok.Claims.(*claims)
	if !ok {
		return Payload{}, false
	}

	return c.Payload, true
}
