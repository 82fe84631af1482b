package controllers

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	h "eventsapi/internal/delivery/http/helpers"
	"eventsapi/internal/domain"
	"eventsapi/internal/metrics"
)

const (
	grantTypePassword     = "password"
	grantTypeRefreshToken = "refresh_token"
)

// OAuth2 error codes returned by the token endpoint.
const (
	oauthInvalidRequest       = "invalid_request"
	oauthInvalidClient        = "invalid_client"
	oauthInvalidGrant         = "invalid_grant"
	oauthUnsupportedGrantType = "unsupported_grant_type"
	oauthServerError          = "server_error"
)

// OAuthError is the RFC 6749 error body of the token endpoint.
// swagger:model OAuthError
type OAuthError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ClientCredentials identifies the single trusted OAuth client.
type ClientCredentials struct {
	ID     string
	Secret string
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
	Client  ClientCredentials
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService, client ClientCredentials) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
		Client:  client,
	}
}

// Token godoc
// @Summary Issue OAuth2 tokens
// @Description Password grant (grant_type=password, username, password) or refresh grant (grant_type=refresh_token, refresh_token). The client authenticates with HTTP Basic credentials. A refresh token can be used once.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Security BasicAuth
// @Param grant_type formData string true "password or refresh_token"
// @Param username formData string false "Account email (password grant)"
// @Param password formData string false "Account password (password grant)"
// @Param refresh_token formData string false "Refresh token (refresh grant)"
// @Success 200 {object} domain.TokenGrant
// @Failure 400 {object} controllers.OAuthError "invalid_request, invalid_grant or unsupported_grant_type"
// @Failure 401 {object} controllers.OAuthError "invalid_client"
// @Failure 500 {object} controllers.OAuthError "server_error"
// @Router /oauth/token [post]
func (c *AuthController) Token(w http.ResponseWriter, r *http.Request) {
	if !c.clientAuthenticated(r) {
		w.Header().Set("WWW-Authenticate", `Basic realm="oauth2/client"`)
		writeOAuthError(w, http.StatusUnauthorized, oauthInvalidClient, "bad client credentials")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeOAuthError(w, http.StatusBadRequest, oauthInvalidRequest, "malformed form body")
		return
	}

	grantType := r.PostForm.Get("grant_type")
	var (
		grant *domain.TokenGrant
		err   error
	)
	switch grantType {
	case grantTypePassword:
		username, password := r.PostForm.Get("username"), r.PostForm.Get("password")
		if username == "" || password == "" {
			writeOAuthError(w, http.StatusBadRequest, oauthInvalidRequest, "username and password are required")
			return
		}
		grant, err = c.Service.PasswordGrant(r.Context(), username, password)
	case grantTypeRefreshToken:
		refreshToken := r.PostForm.Get("refresh_token")
		if refreshToken == "" {
			writeOAuthError(w, http.StatusBadRequest, oauthInvalidRequest, "refresh_token is required")
			return
		}
		grant, err = c.Service.RefreshGrant(r.Context(), refreshToken)
	case "":
		writeOAuthError(w, http.StatusBadRequest, oauthInvalidRequest, "grant_type is required")
		return
	default:
		writeOAuthError(w, http.StatusBadRequest, oauthUnsupportedGrantType, "unsupported grant type: "+grantType)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeOAuthError(w, http.StatusBadRequest, oauthInvalidGrant, "bad credentials")
		case errors.Is(err, domain.ErrInvalidToken):
			writeOAuthError(w, http.StatusBadRequest, oauthInvalidGrant, "invalid refresh token")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			writeOAuthError(w, http.StatusInternalServerError, oauthServerError, "internal error")
		}
		return
	}

	metrics.TokensIssued.WithLabelValues(grantType).Inc()
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	h.WriteJSON(w, http.StatusOK, "application/json;charset=UTF-8", grant)
}

func (c *AuthController) clientAuthenticated(r *http.Request) bool {
	id, secret, ok := r.BasicAuth()
	if !ok {
		return false
	}
	idOK := subtle.ConstantTimeCompare([]byte(id), []byte(c.Client.ID)) == 1
	secretOK := subtle.ConstantTimeCompare([]byte(secret), []byte(c.Client.Secret)) == 1
	return idOK && secretOK
}

func writeOAuthError(w http.ResponseWriter, status int, code, description string) {
	w.Header().Set("Cache-Control", "no-store")
	h.WriteJSON(w, status, "application/json;charset=UTF-8", OAuthError{Error: code, ErrorDescription: description})
}
