package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"eventsapi/internal/domain"
)

const (
	tokenUseAccess  = "access"
	tokenUseRefresh = "refresh"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Email    string   `json:"email"`
	Roles    []string `json:"authorities"`
	TokenUse string   `json:"token_use"`
}

// JWTTokens issues and verifies HS256 tokens with one shared secret.
type JWTTokens struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewJWTTokens returns a JWTTokens that signs with secret and stamps issuer into the iss claim.
func NewJWTTokens(secret, issuer string) *JWTTokens {
	return &JWTTokens{secret: []byte(secret), issuer: issuer, now: time.Now}
}

var (
	_ domain.TokenIssuer   = (*JWTTokens)(nil)
	_ domain.TokenVerifier = (*JWTTokens)(nil)
)

func (j *JWTTokens) Issue(c domain.TokenClaims) (string, error) {
	if c.TokenID == "" || c.AccountID == "" {
		return "", fmt.Errorf("token id and account id are required")
	}
	use := tokenUseAccess
	if c.Refresh {
		use = tokenUseRefresh
	}
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        c.TokenID,
			Subject:   c.AccountID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(j.now()),
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
		},
		Email:    c.Email,
		Roles:    c.Roles,
		TokenUse: use,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (j *JWTTokens) Verify(tokenString string) (*domain.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	}, jwt.WithIssuer(j.issuer), jwt.WithExpirationRequired(), jwt.WithTimeFunc(j.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid || claims.ID == "" || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}
	return &domain.TokenClaims{
		TokenID:   claims.ID,
		AccountID: claims.Subject,
		Email:     claims.Email,
		Roles:     claims.Roles,
		Refresh:   claims.TokenUse == tokenUseRefresh,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
