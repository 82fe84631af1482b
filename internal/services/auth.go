package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"eventsapi/internal/domain"
)

const (
	tokenTypeBearer = "bearer"
	grantScope      = "read write"
)

// TokenTTLs sets the lifetime of issued access and refresh tokens.
type TokenTTLs struct {
	Access  time.Duration
	Refresh time.Duration
}

type authService struct {
	accountRepo    domain.AccountRepository
	hasher         domain.PasswordHasher
	issuer         domain.TokenIssuer
	verifier       domain.TokenVerifier
	store          domain.TokenStore
	ttls           TokenTTLs
	newID          func() string
	now            func() time.Time
	contextTimeout time.Duration
}

// NewAuthService creates an AuthService. Every issued token ID is recorded in store;
// a token whose ID has left the store is rejected.
func NewAuthService(
	accountRepo domain.AccountRepository,
	hasher domain.PasswordHasher,
	issuer domain.TokenIssuer,
	verifier domain.TokenVerifier,
	store domain.TokenStore,
	ttls TokenTTLs,
	timeout time.Duration,
) domain.AuthService {
	return &authService{
		accountRepo:    accountRepo,
		hasher:         hasher,
		issuer:         issuer,
		verifier:       verifier,
		store:          store,
		ttls:           ttls,
		newID:          uuid.NewString,
		now:            time.Now,
		contextTimeout: timeout,
	}
}

func (s *authService) PasswordGrant(ctx context.Context, username, password string) (*domain.TokenGrant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	account, err := s.accountRepo.GetByEmail(ctx, normalizeEmail(username))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.hasher.Compare(account.PasswordHash, account.Salt, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return s.issueGrant(ctx, account)
}

// RefreshGrant exchanges a live refresh token for a new token pair. The refresh token
// is consumed first; of several concurrent exchanges only the one that consumed it wins.
func (s *authService) RefreshGrant(ctx context.Context, refreshToken string) (*domain.TokenGrant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	claims, err := s.verifier.Verify(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.Refresh {
		return nil, fmt.Errorf("%w: not a refresh token", domain.ErrInvalidToken)
	}
	consumed, err := s.store.Revoke(ctx, claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("token store: %w", err)
	}
	if !consumed {
		return nil, fmt.Errorf("%w: revoked", domain.ErrInvalidToken)
	}
	account, err := s.accountRepo.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return s.issueGrant(ctx, account)
}

// Authenticate resolves an access token to the account it was issued for. The account
// is rebuilt from the claims without a store round trip.
func (s *authService) Authenticate(ctx context.Context, accessToken string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	claims, err := s.verifier.Verify(accessToken)
	if err != nil {
		return nil, err
	}
	if claims.Refresh {
		return nil, fmt.Errorf("%w: refresh token used as access token", domain.ErrInvalidToken)
	}
	if err := s.requireLive(ctx, claims.TokenID); err != nil {
		return nil, err
	}
	roles := make([]domain.AccountRole, 0, len(claims.Roles))
	for _, r := range claims.Roles {
		roles = append(roles, domain.AccountRole(r))
	}
	return &domain.Account{ID: claims.AccountID, Email: claims.Email, Roles: roles}, nil
}

func (s *authService) requireLive(ctx context.Context, tokenID string) error {
	ok, err := s.store.Exists(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("token store: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: revoked", domain.ErrInvalidToken)
	}
	return nil
}

func (s *authService) issueGrant(ctx context.Context, account *domain.Account) (*domain.TokenGrant, error) {
	now := s.now()
	accessID, refreshID := s.newID(), s.newID()

	access, err := s.issuer.Issue(domain.TokenClaims{
		TokenID:   accessID,
		AccountID: account.ID,
		Email:     account.Email,
		Roles:     account.RoleStrings(),
		ExpiresAt: now.Add(s.ttls.Access),
	})
	if err != nil {
		return nil, err
	}
	refresh, err := s.issuer.Issue(domain.TokenClaims{
		TokenID:   refreshID,
		AccountID: account.ID,
		Email:     account.Email,
		Roles:     account.RoleStrings(),
		Refresh:   true,
		ExpiresAt: now.Add(s.ttls.Refresh),
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, accessID, account.ID, s.ttls.Access); err != nil {
		return nil, fmt.Errorf("store access token: %w", err)
	}
	if err := s.store.Save(ctx, refreshID, account.ID, s.ttls.Refresh); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &domain.TokenGrant{
		AccessToken:  access,
		TokenType:    tokenTypeBearer,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.ttls.Access / time.Second),
		Scope:        grantScope,
		JTI:          accessID,
	}, nil
}
