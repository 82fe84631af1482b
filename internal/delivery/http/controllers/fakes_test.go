package controllers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"

	"eventsapi/internal/delivery/http/middleware"
	"eventsapi/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var (
	managerAccount  = &domain.Account{ID: "acc-manager", Email: "manager@example.com", Roles: []domain.AccountRole{domain.RoleUser}}
	strangerAccount = &domain.Account{ID: "acc-stranger", Email: "stranger@example.com", Roles: []domain.AccountRole{domain.RoleUser}}
)

// memEventRepo is an in-memory EventRepository sortable by id and name.
type memEventRepo struct {
	mu     sync.Mutex
	byID   map[int64]domain.Event
	nextID int64
	err    error
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{byID: make(map[int64]domain.Event), nextID: 1}
}

func (m *memEventRepo) Create(_ context.Context, e *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	e.ID = m.nextID
	m.nextID++
	m.byID[e.ID] = *e
	return nil
}

func (m *memEventRepo) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (m *memEventRepo) Update(_ context.Context, e *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	m.byID[e.ID] = *e
	return nil
}

func (m *memEventRepo) List(_ context.Context, p domain.Pageable) ([]*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	all := make([]*domain.Event, 0, len(m.byID))
	for _, e := range m.byID {
		e := e
		all = append(all, &e)
	}
	less := func(a, b *domain.Event) bool { return a.ID < b.ID }
	for _, o := range p.Sort {
		desc := o.Direction == domain.SortDesc
		switch o.Property {
		case "name":
			less = func(a, b *domain.Event) bool {
				if desc {
					return a.Name > b.Name
				}
				return a.Name < b.Name
			}
		case "id":
			less = func(a, b *domain.Event) bool {
				if desc {
					return a.ID > b.ID
				}
				return a.ID < b.ID
			}
		default:
			return nil, domain.ErrInvalidSort
		}
	}
	sort.Slice(all, func(i, j int) bool { return less(all[i], all[j]) })
	start := min(p.Offset(), len(all))
	end := min(start+p.Size, len(all))
	return all[start:end], nil
}

func (m *memEventRepo) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID), nil
}

// newRequest builds a request as the router would hand it to a controller: with the
// caller in the context and the {id} path value set.
func newRequest(method, target, body string, caller *domain.Account, id string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, "http://localhost"+target, nil)
	} else {
		r = httptest.NewRequest(method, "http://localhost"+target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if id != "" {
		r.SetPathValue("id", id)
	}
	if caller != nil {
		r = r.WithContext(middleware.SetCurrentAccount(r.Context(), caller))
	}
	return r
}
