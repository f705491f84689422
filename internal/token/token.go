// Package token signs and parses form-session tokens. A token carries the
// whole form state, so the server keeps nothing between requests.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/passform/passform-go/internal/form"
)

const (
	issuer   = "passform"
	audience = "passform-form"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the JWT payload of a form session.
type Claims struct {
	jwt.RegisteredClaims
	Form form.Form `json:"form"`
}

// Session is a decoded form session.
type Session struct {
	ID   string
	Form form.Form
}

// Signer issues and validates form-session tokens with an HMAC secret.
type Signer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewSigner creates a Signer. Tokens expire expiry after they are issued.
func NewSigner(secret string, expiry time.Duration) *Signer {
	return &Signer{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// NewSession returns a session with a fresh id and the initial form.
func NewSession() Session {
	return Session{ID: uuid.NewString(), Form: form.New()}
}

// Sign encodes the session into a signed token.
func (s *Signer) Sign(sess Session) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sess.ID,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Form: sess.Form,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// Parse validates a token and returns the session it carries.
func (s *Signer) Parse(tokenString string) (Session, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithAudience(audience), jwt.WithTimeFunc(s.now))
	if err != nil {
		return Session{}, ErrInvalidToken
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return Session{}, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return Session{}, ErrInvalidToken
	}

	return Session{ID: claims.Subject, Form: claims.Form}, nil
}
