package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tracker/internal/model"
)

var (
	// ErrInvalidToken is returned when a token is malformed, forged or of the wrong kind.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a token is past its expiry.
	ErrExpiredToken = errors.New("token has expired")
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Identity is the authenticated subject carried by a token.
type Identity struct {
	UserID uint       `json:"userId"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
}

// TokenConfig configures one kind of token.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// Claims is the signed payload of both token kinds.
type Claims struct {
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	TokenType string     `json:"token_type"`
	jwt.RegisteredClaims
}

// signer is the HS256 machinery shared by the two token kinds. It is never
// exposed directly so callers cannot pick the wrong secret for a kind.
type signer struct {
	secret    []byte
	ttl       time.Duration
	issuer    string
	tokenType string
	now       func() time.Time
}

func newSigner(cfg TokenConfig, tokenType string) signer {
	return signer{
		secret:    []byte(cfg.Secret),
		ttl:       cfg.TTL,
		issuer:    cfg.Issuer,
		tokenType: tokenType,
		now:       time.Now,
	}
}

func (s signer) issue(id Identity) (string, error) {
	now := s.now()
	claims := Claims{
		Email:     id.Email,
		Role:      id.Role,
		TokenType: s.tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   strconv.FormatUint(uint64(id.UserID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s signer) verify(raw string) (Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpiredToken
		}
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != s.tokenType {
		return Identity{}, ErrInvalidToken
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 || !claims.Role.Valid() {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: uint(userID), Email: claims.Email, Role: claims.Role}, nil
}

// AccessTokens mints and verifies short-lived access tokens.
type AccessTokens struct {
	s signer
}

func NewAccessTokens(cfg TokenConfig) *AccessTokens {
	return &AccessTokens{s: newSigner(cfg, tokenTypeAccess)}
}

func (t *AccessTokens) Issue(id Identity) (string, error) { return t.s.issue(id) }

func (t *AccessTokens) Verify(token string) (Identity, error) { return t.s.verify(token) }

// TTL returns the access token lifetime.
func (t *AccessTokens) TTL() time.Duration { return t.s.ttl }

// RefreshTokens mints and verifies long-lived refresh tokens. They are only
// accepted by the refresh flow.
type RefreshTokens struct {
	s signer
}

func NewRefreshTokens(cfg TokenConfig) *RefreshTokens {
	return &RefreshTokens{s: newSigner(cfg, tokenTypeRefresh)}
}

func (t *RefreshTokens) Issue(id Identity) (string, error) { return t.s.issue(id) }

func (t *RefreshTokens) Verify(token string) (Identity, error) { return t.s.verify(token) }
