package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventsapi/internal/domain"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type accountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) domain.AccountRepository {
	return &accountRepository{DB: db}
}

// Create inserts the account and its roles in one transaction. The caller assigns ID.
func (r *accountRepository) Create(ctx context.Context, a *domain.Account) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO accounts (id, email, password_hash, salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.ExecContext(ctx, query, a.ID, a.Email, a.PasswordHash, a.Salt, a.CreatedAt, a.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert account: %w", err)
	}

	roleQuery := `
		INSERT INTO account_roles (account_id, role)
		VALUES ($1, $2)
		ON CONFLICT (account_id, role) DO NOTHING
	`
	for _, role := range a.Roles {
		if _, err := tx.ExecContext(ctx, roleQuery, a.ID, string(role)); err != nil {
			return fmt.Errorf("insert account role: %w", err)
		}
	}
	return tx.Commit()
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getOne(ctx, "a.email = $1", email)
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.getOne(ctx, "a.id = $1", id)
}

func (r *accountRepository) getOne(ctx context.Context, where string, arg any) (*domain.Account, error) {
	query := `
		SELECT a.id, a.email, a.password_hash, a.salt, a.created_at, a.updated_at,
			COALESCE(array_agg(r.role ORDER BY r.role) FILTER (WHERE r.role IS NOT NULL), '{}')
		FROM accounts a
		LEFT JOIN account_roles r ON r.account_id = a.id
		WHERE ` + where + `
		GROUP BY a.id
	`
	a := &domain.Account{}
	var roles []string
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Salt, &a.CreatedAt, &a.UpdatedAt, pq.Array(&roles),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	a.Roles = make([]domain.AccountRole, 0, len(roles))
	for _, role := range roles {
		a.Roles = append(a.Roles, domain.AccountRole(role))
	}
	return a, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
