package mockapi

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"ptjobs/internal/domain"
)

// claims is the access-token payload.
type claims struct {
	UserID domain.ID `json:"uid"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

type issuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func (i issuer) issue(u *user) (string, error) {
	now := i.now()
	c := &claims{
		UserID: u.profile.ID,
		Role:   u.profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.profile.Username,
			Issuer:    "ptjobs-mockapi",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.key)
}

func (i issuer) parse(raw string) (*claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &claims{}, func(*jwt.Token) (any, error) {
		return i.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, err
	}
	c, ok := tok.Claims.(*claims)
	if !ok || !tok.Valid {
		return nil, errors.New("invalid token claims")
	}
	return c, nil
}
