package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"eventsapi/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	grant        *domain.TokenGrant
	err          error
	lastUsername string
	lastPassword string
	lastRefresh  string
}

func (f *fakeAuthService) PasswordGrant(_ context.Context, username, password string) (*domain.TokenGrant, error) {
	f.lastUsername, f.lastPassword = username, password
	return f.grant, f.err
}

func (f *fakeAuthService) RefreshGrant(_ context.Context, refreshToken string) (*domain.TokenGrant, error) {
	f.lastRefresh = refreshToken
	return f.grant, f.err
}

func (f *fakeAuthService) Authenticate(context.Context, string) (*domain.Account, error) {
	return nil, errors.New("not implemented")
}

func TestAuthController_Token(t *testing.T) {
	client := ClientCredentials{ID: "myApp", Secret: "pass"}
	grant := &domain.TokenGrant{AccessToken: "access", TokenType: "bearer", RefreshToken: "refresh", ExpiresIn: 600, Scope: "read write", JTI: "jti-1"}

	tests := []struct {
		name         string
		form         url.Values
		clientID     string
		clientSecret string
		svc          *fakeAuthService
		wantStatus   int
		wantError    string
	}{
		{
			name:         "password grant",
			form:         url.Values{"grant_type": {"password"}, "username": {"keesun@email.com"}, "password": {"keesun"}},
			clientID:     "myApp",
			clientSecret: "pass",
			svc:          &fakeAuthService{grant: grant},
			wantStatus:   http.StatusOK,
		},
		{
			name:         "refresh grant",
			form:         url.Values{"grant_type": {"refresh_token"}, "refresh_token": {"rt"}},
			clientID:     "myApp",
			clientSecret: "pass",
			svc:          &fakeAuthService{grant: grant},
			wantStatus:   http.StatusOK,
		},
		{
			name:         "bad client secret",
			form:         url.Values{"grant_type": {"password"}, "username": {"u"}, "password": {"p"}},
			clientID:     "myApp",
			clientSecret: "wrong",
			svc:          &fakeAuthService{grant: grant},
			wantStatus:   http.StatusUnauthorized,
			wantError:    "invalid_client",
		},
		{
			name:       "no client credentials",
			form:       url.Values{"grant_type": {"password"}, "username": {"u"}, "password": {"p"}},
			svc:        &fakeAuthService{grant: grant},
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid_client",
		},
		{
			name:         "bad user credentials",
			form:         url.Values{"grant_type": {"password"}, "username": {"u@example.com"}, "password": {"nope"}},
			clientID:     "myApp",
			clientSecret: "pass",
			svc:          &fakeAuthService{err: domain.ErrInvalidCredentials},
			wantStatus:   http.StatusBadRequest,
			wantError:    "invalid_grant",
		},
		{
			name:         "revoked refresh token",
			form:         url.Values{"grant_type": {"refresh_token"}, "refresh_token": {"rt"}},
			clientID:     "myApp",
			clientSecret: "pass",
			svc:          &fakeAuthService{err: domain.ErrInvalidToken},
			wantStatus:   http.StatusBadRequest,
			wantError:    "invalid_grant",
		},
		{
			name:         "unsupported grant",
			form:         url.Values{"grant_type": {"client_credentials"}},
			clientID:     "myApp",
			clientSecret: "pass",
			svc:          &fakeAuthService{grant: grant},
			wantStatus:   http.StatusBadRequest,
			wantError:    "unsupported_grant_type",
		},
		{
			name:         "missing password",
			form:         url.Values{"grant_type": {"password"}, "username": {"u"}},
			clientID:     "myApp",
			clientSecret: "pass",
			svc:          &fakeAuthService{grant: grant},
			wantStatus:   http.StatusBadRequest,
			wantError:    "invalid_request",
		},
		{
			name:         "store failure",
			form:         url.Values{"grant_type": {"password"}, "username": {"u"}, "password": {"p"}},
			clientID:     "myApp",
			clientSecret: "pass",
			svc:          &fakeAuthService{err: errors.New("db down")},
			wantStatus:   http.StatusInternalServerError,
			wantError:    "server_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewAuthController(testLogger, tt.svc, client)
			req := httptest.NewRequest(http.MethodPost, "/oauth/token", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.clientID != "" {
				req.SetBasicAuth(tt.clientID, tt.clientSecret)
			}
			rec := httptest.NewRecorder()
			c.Token(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
			if tt.wantError != "" {
				var got OAuthError
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, tt.wantError, got.Error)
				return
			}
			var got domain.TokenGrant
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, "access", got.AccessToken)
			assert.Equal(t, "bearer", got.TokenType)
			assert.Equal(t, "refresh", got.RefreshToken)
			assert.Equal(t, int64(600), got.ExpiresIn)
		})
	}
}

func TestAuthController_Token_passes_form_values(t *testing.T) {
	svc := &fakeAuthService{grant: &domain.TokenGrant{AccessToken: "a"}}
	c := NewAuthController(testLogger, svc, ClientCredentials{ID: "myApp", Secret: "pass"})
	form := url.Values{"grant_type": {"password"}, "username": {"keesun@email.com"}, "password": {"keesun"}}
	req := httptest.NewRequest(http.MethodPost, "/oauth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("myApp", "pass")
	c.Token(httptest.NewRecorder(), req)

	assert.Equal(t, "keesun@email.com", svc.lastUsername)
	assert.Equal(t, "keesun", svc.lastPassword)
}
