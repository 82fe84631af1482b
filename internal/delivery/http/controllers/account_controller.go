package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "eventsapi/internal/delivery/http/helpers"
	"eventsapi/internal/domain"
	"eventsapi/internal/metrics"
)

// RegisterAccountRequest is the request body for POST /accounts.
type RegisterAccountRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AccountResponse is the public view of an account.
type AccountResponse struct {
	ID    string               `json:"id"`
	Email string               `json:"email"`
	Roles []domain.AccountRole `json:"roles"`
}

// RegisterAccountSuccessResponse is the success response envelope for POST /accounts (201).
type RegisterAccountSuccessResponse struct {
	Data  AccountResponse `json:"data"`
	Error *h.APIError     `json:"error"`
}

type AccountController struct {
	Logger  *slog.Logger
	Service domain.AccountService
}

func NewAccountController(logger *slog.Logger, svc domain.AccountService) *AccountController {
	return &AccountController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register an account
// @Description Creates a USER account and sends a welcome email. Passwords must be at least 8 characters.
// @Tags accounts
// @Accept json
// @Produce json
// @Param body body RegisterAccountRequest true "Account credentials"
// @Success 201 {object} controllers.RegisterAccountSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /accounts [post]
func (c *AccountController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterAccountRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	account, err := c.Service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "email already registered")
		case errors.Is(err, domain.ErrInvalidInput):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": "))
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "internal error")
		}
		return
	}
	metrics.AccountsRegistered.Inc()
	h.WriteJSONSuccess(w, http.StatusCreated, AccountResponse{ID: account.ID, Email: account.Email, Roles: account.Roles})
}
