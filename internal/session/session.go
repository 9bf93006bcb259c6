// Package session carries scientific calculator state between requests in
// a signed token, so the server keeps no per-client state.
package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Dan9191/calc-service/internal/calc/scientific"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

const keyInfo = "calc-service scientific session"

var ErrInvalidToken = errors.New("invalid session token")

// Signer issues and verifies session tokens
type Signer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

type claims struct {
	Display     string  `json:"display"`
	Accumulator *string `json:"acc,omitempty"`
	Pending     string  `json:"op,omitempty"`
	Awaiting    bool    `json:"awaiting,omitempty"`
	Ready       bool    `json:"ready,omitempty"`
	Angle       string  `json:"angle"`
	jwt.RegisteredClaims
}

// NewSigner derives the signing key from secret
func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret is empty")
	}
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}
	return &Signer{key: key, ttl: ttl, now: time.Now}, nil
}

// Issue encodes the state into a fresh token
func (s *Signer) Issue(st *scientific.State) (string, error) {
	now := s.now()
	c := claims{
		Display:  st.Display,
		Pending:  st.Pending.String(),
		Awaiting: st.AwaitingNewEntry,
		Ready:    st.OperandReady,
		Angle:    st.Angle.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	if st.Accumulator != nil {
		acc := strconv.FormatFloat(*st.Accumulator, 'g', -1, 64)
		c.Accumulator = &acc
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

// Restore verifies a token and rebuilds its state. An empty token yields a
// new session.
func (s *Signer) Restore(token string) (*scientific.State, error) {
	if token == "" {
		return scientific.New(), nil
	}

	c := &claims{}
	_, err := jwt.ParseWithClaims(token, c, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	st := &scientific.State{
		Display:          c.Display,
		AwaitingNewEntry: c.Awaiting,
		OperandReady:     c.Ready,
	}
	if c.Pending != "" {
		op, ok := scientific.ParseOperator(c.Pending)
		if !ok {
			return nil, fmt.Errorf("%w: operator %q", ErrInvalidToken, c.Pending)
		}
		st.Pending = op
	}
	if c.Accumulator != nil {
		acc, err := strconv.ParseFloat(*c.Accumulator, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: accumulator %q", ErrInvalidToken, *c.Accumulator)
		}
		st.Accumulator = &acc
	}
	angle, ok := scientific.ParseAngleUnit(c.Angle)
	if !ok {
		return nil, fmt.Errorf("%w: angle %q", ErrInvalidToken, c.Angle)
	}
	st.Angle = angle
	return st, nil
}
