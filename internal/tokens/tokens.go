package tokens

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrExpired          = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrMalformed        = errors.New("malformed token")
)

// Subject is the identity claim carried by a token. Current tokens carry a
// numeric user id; tokens issued before the format change carry the email.
type Subject struct {
	UserID uint
	Email  string
}

func (s Subject) ByID() bool { return s.UserID != 0 }

type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Subject resolves the sub claim once, so callers never sniff the string
// format themselves.
func (c *Claims) Subject() Subject {
	if id, err := strconv.ParseUint(c.RegisteredClaims.Subject, 10, 32); err == nil {
		return Subject{UserID: uint(id), Email: c.Email}
	}
	return Subject{Email: c.RegisteredClaims.Subject}
}

func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

type Codec struct {
	Secret []byte
	TTL    time.Duration
}

// Issue signs a HS256 token for the user. The jti keeps tokens distinct even
// when two logins for the same user land in the same instant.
func (c *Codec) Issue(userID uint, email string) (string, time.Time, error) {
	expiresAt := time.Now().Add(c.TTL)
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse verifies signature and expiry. It knows nothing about revocation.
func (c *Codec) Parse(tokenStr string) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return c.Secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformed
		}
	}
	if !tkn.Valid {
		return nil, ErrMalformed
	}
	return &claims, nil
}
