package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventsapi/internal/domain"
)

// eventSortColumns maps sortable JSON property names to columns. Anything else is rejected.
var eventSortColumns = map[string]string{
	"id":                      "id",
	"name":                    "name",
	"beginEnrollmentDateTime": "begin_enrollment_date_time",
	"closeEnrollmentDateTime": "close_enrollment_date_time",
	"beginEventDateTime":      "begin_event_date_time",
	"endEventDateTime":        "end_event_date_time",
	"basePrice":               "base_price",
	"maxPrice":                "max_price",
	"limitOfEnrollment":       "limit_of_enrollment",
	"eventStatus":             "event_status",
}

const eventColumns = `id, name, description, begin_enrollment_date_time, close_enrollment_date_time,
		begin_event_date_time, end_event_date_time, location, base_price, max_price,
		limit_of_enrollment, offline, free, event_status, manager_id, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, begin_enrollment_date_time, close_enrollment_date_time,
			begin_event_date_time, end_event_date_time, location, base_price, max_price,
			limit_of_enrollment, offline, free, event_status, manager_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Name, e.Description, e.BeginEnrollmentDateTime, e.CloseEnrollmentDateTime,
		e.BeginEventDateTime, e.EndEventDateTime, e.Location, e.BasePrice, e.MaxPrice,
		e.LimitOfEnrollment, e.Offline, e.Free, string(e.EventStatus), managerID(e), e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// Update overwrites every mutable column. Manager and creation time are left untouched.
func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET name = $1, description = $2, begin_enrollment_date_time = $3, close_enrollment_date_time = $4,
			begin_event_date_time = $5, end_event_date_time = $6, location = $7, base_price = $8,
			max_price = $9, limit_of_enrollment = $10, offline = $11, free = $12, event_status = $13,
			updated_at = $14
		WHERE id = $15
	`
	res, err := r.DB.ExecContext(ctx, query,
		e.Name, e.Description, e.BeginEnrollmentDateTime, e.CloseEnrollmentDateTime,
		e.BeginEventDateTime, e.EndEventDateTime, e.Location, e.BasePrice, e.MaxPrice,
		e.LimitOfEnrollment, e.Offline, e.Free, string(e.EventStatus), e.UpdatedAt, e.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) List(ctx context.Context, pageable domain.Pageable) ([]*domain.Event, error) {
	orderBy, err := eventOrderBy(pageable.Sort)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY ` + orderBy + ` LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, pageable.Size, pageable.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// eventOrderBy builds an ORDER BY clause from whitelisted columns, with id as the final tie-breaker.
func eventOrderBy(sort []domain.SortOrder) (string, error) {
	parts := make([]string, 0, len(sort)+1)
	hasID := false
	for _, o := range sort {
		col, ok := eventSortColumns[o.Property]
		if !ok {
			return "", fmt.Errorf("%w: %q", domain.ErrInvalidSort, o.Property)
		}
		dir := "ASC"
		if o.Direction == domain.SortDesc {
			dir = "DESC"
		}
		if col == "id" {
			hasID = true
		}
		parts = append(parts, col+" "+dir)
	}
	if !hasID {
		parts = append(parts, "id ASC")
	}
	return strings.Join(parts, ", "), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var status string
	var manager sql.NullString
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.BeginEnrollmentDateTime, &e.CloseEnrollmentDateTime,
		&e.BeginEventDateTime, &e.EndEventDateTime, &e.Location, &e.BasePrice, &e.MaxPrice,
		&e.LimitOfEnrollment, &e.Offline, &e.Free, &status, &manager, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.EventStatus = domain.EventStatus(status)
	if manager.Valid {
		e.Manager = &domain.AccountRef{ID: manager.String}
	}
	return e, nil
}

func managerID(e *domain.Event) sql.NullString {
	if e.Manager == nil || e.Manager.ID == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: e.Manager.ID, Valid: true}
}
