package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"eventsapi/internal/adapters/auth"
	"eventsapi/internal/adapters/tokenstore"
	"eventsapi/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	svc     domain.AuthService
	store   domain.TokenStore
	account *domain.Account
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	ctx := context.Background()
	repo := newFakeAccountRepo()
	accounts := newTestAccountService(repo, nil)
	account, err := accounts.SaveAccount(ctx, "keesun@email.com", "keesun", []domain.AccountRole{domain.RoleAdmin, domain.RoleUser})
	require.NoError(t, err)

	tokens := auth.NewJWTTokens("test-secret", "eventsapi")
	store := tokenstore.NewMemoryStore()
	svc := NewAuthService(repo, plainHasher{}, tokens, tokens, store, TokenTTLs{Access: 10 * time.Minute, Refresh: time.Hour}, 5*time.Second)
	return authFixture{svc: svc, store: store, account: account}
}

func TestAuthService_PasswordGrant(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "success", username: "keesun@email.com", password: "keesun"},
		{name: "username is case insensitive", username: "KEESUN@email.com", password: "keesun"},
		{name: "wrong password", username: "keesun@email.com", password: "nope", wantErr: domain.ErrInvalidCredentials},
		{name: "unknown user", username: "nobody@email.com", password: "keesun", wantErr: domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grant, err := f.svc.PasswordGrant(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, grant.AccessToken)
			assert.NotEmpty(t, grant.RefreshToken)
			assert.Equal(t, "bearer", grant.TokenType)
			assert.Equal(t, "read write", grant.Scope)
			assert.Equal(t, int64(600), grant.ExpiresIn)
			assert.NotEmpty(t, grant.JTI)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	grant, err := f.svc.PasswordGrant(ctx, "keesun@email.com", "keesun")
	require.NoError(t, err)

	got, err := f.svc.Authenticate(ctx, grant.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, f.account.ID, got.ID)
	assert.Equal(t, "keesun@email.com", got.Email)
	assert.True(t, got.HasRole(domain.RoleAdmin))

	_, err = f.svc.Authenticate(ctx, grant.RefreshToken)
	require.ErrorIs(t, err, domain.ErrInvalidToken, "refresh token must not authenticate requests")

	_, err = f.svc.Authenticate(ctx, "garbage")
	require.ErrorIs(t, err, domain.ErrInvalidToken)

	revoked, err := f.store.Revoke(ctx, grant.JTI)
	require.NoError(t, err)
	require.True(t, revoked)
	_, err = f.svc.Authenticate(ctx, grant.AccessToken)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthService_RefreshGrant(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	grant, err := f.svc.PasswordGrant(ctx, "keesun@email.com", "keesun")
	require.NoError(t, err)

	next, err := f.svc.RefreshGrant(ctx, grant.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, grant.AccessToken, next.AccessToken)

	_, err = f.svc.Authenticate(ctx, next.AccessToken)
	require.NoError(t, err)

	_, err = f.svc.RefreshGrant(ctx, grant.RefreshToken)
	require.ErrorIs(t, err, domain.ErrInvalidToken, "a refresh token is single use")

	_, err = f.svc.RefreshGrant(ctx, next.AccessToken)
	require.ErrorIs(t, err, domain.ErrInvalidToken, "access token cannot refresh")
}

// laggyStore delays every store call so concurrent callers overlap.
type laggyStore struct {
	domain.TokenStore
	delay time.Duration
}

func (s laggyStore) Exists(ctx context.Context, tokenID string) (bool, error) {
	time.Sleep(s.delay)
	return s.TokenStore.Exists(ctx, tokenID)
}

func (s laggyStore) Revoke(ctx context.Context, tokenID string) (bool, error) {
	time.Sleep(s.delay)
	return s.TokenStore.Revoke(ctx, tokenID)
}

func TestAuthService_RefreshGrant_concurrent_exchanges_succeed_once(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAccountRepo()
	_, err := newTestAccountService(repo, nil).SaveAccount(ctx, "keesun@email.com", "keesun", nil)
	require.NoError(t, err)
	tokens := auth.NewJWTTokens("test-secret", "eventsapi")
	store := laggyStore{TokenStore: tokenstore.NewMemoryStore(), delay: 5 * time.Millisecond}
	svc := NewAuthService(repo, plainHasher{}, tokens, tokens, store, TokenTTLs{Access: 10 * time.Minute, Refresh: time.Hour}, 5*time.Second)

	grant, err := svc.PasswordGrant(ctx, "keesun@email.com", "keesun")
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		start     = make(chan struct{})
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, err := svc.RefreshGrant(ctx, grant.RefreshToken); err == nil {
				successes.Add(1)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidToken)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
}
