package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"

	"eventsapi/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	mu      sync.Mutex
	byID    map[int64]*domain.Event
	nextID  int64
	err     error // if set, Create and Update return this error
	updates int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[int64]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	e.ID = f.nextID
	f.nextID++
	stored := *e
	f.byID[e.ID] = &stored
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *e
	f.byID[e.ID] = &stored
	f.updates++
	return nil
}

// List supports sorting by name only, which is all the tests need.
func (f *fakeEventRepo) List(ctx context.Context, p domain.Pageable) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]*domain.Event, 0, len(f.byID))
	for _, e := range f.byID {
		all = append(all, e)
	}
	desc := false
	for _, o := range p.Sort {
		if o.Property != "name" {
			return nil, domain.ErrInvalidSort
		}
		desc = o.Direction == domain.SortDesc
	}
	sort.Slice(all, func(i, j int) bool {
		if len(p.Sort) == 0 {
			return all[i].ID < all[j].ID
		}
		if desc {
			return all[i].Name > all[j].Name
		}
		return all[i].Name < all[j].Name
	})
	start := p.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + p.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (f *fakeEventRepo) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID), nil
}

// fakeAccountRepo is an in-memory AccountRepository keyed by email.
type fakeAccountRepo struct {
	mu      sync.Mutex
	byEmail map[string]*domain.Account
	getErr  error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byEmail: make(map[string]*domain.Account)}
}

func (f *fakeAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[a.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	f.byEmail[a.Email] = a
	return nil
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if a, ok := f.byEmail[email]; ok {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

type fakeEmailService struct {
	sent []*domain.WelcomeMessageEmailData
	err  error
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

type fakeMailer struct {
	to, subject, html, text string
	err                     error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	f.to, f.subject, f.html, f.text = to, subject, html, text
	return f.err
}

type fakeRenderer struct {
	err error
}

func (f *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject:" + name, "<p>" + name + "</p>", name, nil
}

// plainHasher stores "salt:password" so tests avoid bcrypt cost.
type plainHasher struct{}

func (plainHasher) GenerateSalt() (string, error) { return "salt", nil }

func (plainHasher) Hash(salt, password string) (string, error) { return salt + ":" + password, nil }

func (plainHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

var errBoom = errors.New("boom")
