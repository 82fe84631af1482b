package domain

import (
	"context"
	"time"
)

// AccountRole is an authority granted to an account.
type AccountRole string

const (
	RoleUser  AccountRole = "USER"
	RoleAdmin AccountRole = "ADMIN"
)

// Valid reports whether r is a known role.
func (r AccountRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Account represents a registered user. Email is the login name.
// swagger:model Account
type Account struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Salt         string        `json:"-"`
	Roles        []AccountRole `json:"roles"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// NewAccount returns a new Account with the given fields. ID is assigned by the account service.
func NewAccount(email string, roles []AccountRole, createdAt, updatedAt time.Time) *Account {
	return &Account{
		Email:     email,
		Roles:     roles,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// HasRole reports whether the account holds role.
func (a *Account) HasRole(role AccountRole) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// SameAs compares two accounts by identifier. A nil account never matches.
func (a *Account) SameAs(other *Account) bool {
	if a == nil || other == nil {
		return false
	}
	return a.ID != "" && a.ID == other.ID
}

// RoleStrings returns the roles as plain strings, e.g. for token claims.
func (a *Account) RoleStrings() []string {
	out := make([]string, len(a.Roles))
	for i, r := range a.Roles {
		out[i] = string(r)
	}
	return out
}

// AccountRef is the JSON form of an account referenced from another resource.
// Only the identifier is exposed.
type AccountRef struct {
	ID string `json:"id"`
}

// Ref returns a reference to a.
func (a *Account) Ref() *AccountRef {
	if a == nil {
		return nil
	}
	return &AccountRef{ID: a.ID}
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenClaims is what a verified access or refresh token says about its bearer.
type TokenClaims struct {
	TokenID   string
	AccountID string
	Email     string
	Roles     []string
	Refresh   bool
	ExpiresAt time.Time
}

// TokenIssuer issues signed tokens for an authenticated account.
type TokenIssuer interface {
	Issue(claims TokenClaims) (string, error)
}

// TokenVerifier verifies a token's signature and expiry and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// TokenStore tracks live token IDs. A token whose ID is absent is treated as revoked.
type TokenStore interface {
	Save(ctx context.Context, tokenID, accountID string, ttl time.Duration) error
	Exists(ctx context.Context, tokenID string) (bool, error)
	// Revoke removes tokenID and reports whether it was live. Concurrent callers
	// revoking the same ID see true at most once.
	Revoke(ctx context.Context, tokenID string) (bool, error)
}

// AccountRepository defines the interface for account storage.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
}

// AccountService defines registration and lookup of accounts.
type AccountService interface {
	SaveAccount(ctx context.Context, email, password string, roles []AccountRole) (*Account, error)
	Register(ctx context.Context, email, password string) (*Account, error)
	LoadByUsername(ctx context.Context, email string) (*Account, error)
	SeedAccounts(ctx context.Context, seeds []AccountSeed) error
}

// AccountSeed describes an account created at startup when missing.
type AccountSeed struct {
	Email    string
	Password string
	Roles    []AccountRole
}

// TokenGrant is the result of a successful OAuth2 token request.
type TokenGrant struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
	JTI          string `json:"jti"`
}

// AuthService implements the OAuth2 password and refresh-token grants and resolves
// bearer tokens to the calling account.
type AuthService interface {
	PasswordGrant(ctx context.Context, username, password string) (*TokenGrant, error)
	RefreshGrant(ctx context.Context, refreshToken string) (*TokenGrant, error)
	Authenticate(ctx context.Context, accessToken string) (*Account, error)
}
