package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"eventsapi/internal/domain"
)

const minPasswordLen = 8

// validate applies the same "email" rule as the registration request's struct tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

type accountService struct {
	accountRepo    domain.AccountRepository
	hasher         domain.PasswordHasher
	emailService   domain.EmailService
	logger         *slog.Logger
	loginURL       string
	newID          func() string
	now            func() time.Time
	contextTimeout time.Duration
}

// NewAccountService creates an AccountService. emailService may be nil, in which case
// no welcome email is sent on registration.
func NewAccountService(
	accountRepo domain.AccountRepository,
	hasher domain.PasswordHasher,
	emailService domain.EmailService,
	logger *slog.Logger,
	loginURL string,
	timeout time.Duration,
) domain.AccountService {
	return &accountService{
		accountRepo:    accountRepo,
		hasher:         hasher,
		emailService:   emailService,
		logger:         logger,
		loginURL:       loginURL,
		newID:          uuid.NewString,
		now:            time.Now,
		contextTimeout: timeout,
	}
}

// SaveAccount hashes the password and stores a new account. Roles default to USER.
func (s *accountService) SaveAccount(ctx context.Context, email, password string, roles []domain.AccountRole) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = normalizeEmail(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	if len(roles) == 0 {
		roles = []domain.AccountRole{domain.RoleUser}
	}
	for _, r := range roles {
		if !r.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, r)
		}
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	account := domain.NewAccount(email, roles, now, now)
	account.ID = s.newID()
	account.PasswordHash = hash
	account.Salt = salt
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Register creates a USER account for self sign-up and sends the welcome email.
// A failed email is logged and does not fail the registration.
func (s *accountService) Register(ctx context.Context, email, password string) (*domain.Account, error) {
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}
	account, err := s.SaveAccount(ctx, email, password, []domain.AccountRole{domain.RoleUser})
	if err != nil {
		return nil, err
	}
	if s.emailService != nil {
		data := &domain.WelcomeMessageEmailData{
			Email:     account.Email,
			AccountID: account.ID,
			LoginURL:  s.loginURL,
		}
		if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "welcome email failed", "account_id", account.ID, "err", err)
		}
	}
	return account, nil
}

func (s *accountService) LoadByUsername(ctx context.Context, email string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.accountRepo.GetByEmail(ctx, normalizeEmail(email))
}

// SeedAccounts creates each configured account that does not exist yet. Seeds with an
// empty email are skipped.
func (s *accountService) SeedAccounts(ctx context.Context, seeds []domain.AccountSeed) error {
	for _, seed := range seeds {
		if strings.TrimSpace(seed.Email) == "" {
			continue
		}
		_, err := s.LoadByUsername(ctx, seed.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return fmt.Errorf("seed %s: %w", seed.Email, err)
		}
		account, err := s.SaveAccount(ctx, seed.Email, seed.Password, seed.Roles)
		if errors.Is(err, domain.ErrDuplicateEmail) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed %s: %w", seed.Email, err)
		}
		s.logger.InfoContext(ctx, "seeded account", "account_id", account.ID, "roles", account.RoleStrings())
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
