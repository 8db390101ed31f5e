// Package auth implements the authenticated session machinery: the token
// service that issues and verifies the access/refresh JWT pair, the cookie
// transport that binds the pair to the HTTP boundary, and password hashing.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/config"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/model"
)

// ErrInvalidToken is returned when a token is missing a signature, carries a
// bad signature, has expired, or was signed with the wrong key.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the verified contents of an access token.
type Claims struct {
	UserID   uint64
	Username string
}

// TokenService issues and verifies the access/refresh token pair. The two
// token kinds are signed with independent secrets so a leak of one key never
// lets an attacker forge the other kind. Tokens are stateless: verification
// is signature + expiry only, with no server-side revocation list.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService builds a TokenService from the process configuration.
func NewTokenService(cfg config.Config) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     time.Duration(cfg.AccessTTLMin) * time.Minute,
		refreshTTL:    time.Duration(cfg.RefreshTTLDays) * 24 * time.Hour,
	}
}

// AccessTTL exposes the access token lifetime for cookie max-age parity.
func (s *TokenService) AccessTTL() time.Duration { return s.accessTTL }

// RefreshTTL exposes the refresh token lifetime for cookie max-age parity.
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

// IssuePair signs a fresh access and refresh token for the user. The access
// token encodes the user id and username (falling back to email for accounts
// without one); the refresh token encodes only the id. Both carry iat and
// exp claims.
func (s *TokenService) IssuePair(u model.User) (access, refresh string, err error) {
	now := time.Now().UTC()
	name := u.Username
	if name == "" {
		name = u.Email
	}
	access, err = sign(s.accessSecret, jwt.MapClaims{
		"sub":      u.ID,
		"username": name,
		"iat":      now.Unix(),
		"exp":      now.Add(s.accessTTL).Unix(),
	})
	if err != nil {
		return "", "", err
	}
	refresh, err = sign(s.refreshSecret, jwt.MapClaims{
		"sub": u.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.refreshTTL).Unix(),
	})
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// VerifyAccess validates an access token and returns its claims.
func (s *TokenService) VerifyAccess(token string) (Claims, error) {
	claims, err := parse(s.accessSecret, token)
	if err != nil {
		return Claims{}, err
	}
	id, ok := subjectID(claims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	username, _ := claims["username"].(string)
	return Claims{UserID: id, Username: username}, nil
}

// VerifyRefresh validates a refresh token and returns the user id it was
// issued for.
func (s *TokenService) VerifyRefresh(token string) (uint64, error) {
	claims, err := parse(s.refreshSecret, token)
	if err != nil {
		return 0, err
	}
	id, ok := subjectID(claims)
	if !ok {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// sign produces an HS256 JWT for the given claims.
func sign(secret []byte, claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parse validates signature, algorithm and expiry, returning the claims map.
// All failure modes collapse into ErrInvalidToken; callers never need to
// distinguish a forged token from an expired one.
func parse(secret []byte, token string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC so an attacker cannot
		// downgrade to "none" or swap algorithms.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// subjectID extracts the numeric sub claim. JSON numbers decode as float64;
// some encoders emit numeric strings, so both forms are accepted.
func subjectID(claims jwt.MapClaims) (uint64, bool) {
	switch v := claims["sub"].(type) {
	case float64:
		return uint64(v), true
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
