package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
	"github.com/eventrsvp/rsvp-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	seq      int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	stored := cloneAccount(account)
	stored.ID = "acc-" + strconv.Itoa(r.seq)
	r.accounts[stored.ID] = stored
	return cloneAccount(stored), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) List(_ context.Context, offset, limit int) ([]*domain.Account, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*domain.Account, 0, len(r.accounts))
	for i := 1; i <= r.seq; i++ {
		if a, ok := r.accounts["acc-"+strconv.Itoa(i)]; ok {
			all = append(all, cloneAccount(a))
		}
	}
	p := domain.Page{Limit: limit, Offset: offset}
	start, end := p.Window(len(all))
	return all[start:end], int64(len(all)), nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *stubAccountRepo) seed(name, email, role string) *domain.Account {
	a, err := r.Create(context.Background(), &domain.Account{Name: name, Email: email, Role: role})
	if err != nil {
		panic(err)
	}
	return a
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

// stubEventRepo keeps events in memory and applies AppendAttendee under a
// mutex with the same guard the Mongo filter expresses.
type stubEventRepo struct {
	mu     sync.Mutex
	events map[string]*domain.Event
	order  []string
	seq    int

	// appendHook runs before the guard is evaluated, without the lock held.
	appendHook func()
	appendErr  error
	guardHits  int
	writeErr   error
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{events: make(map[string]*domain.Event)}
}

func cloneEvent(e *domain.Event) *domain.Event {
	clone := *e
	// Keep nil and empty distinct like the Mongo mapping does.
	if e.Attendees != nil {
		clone.Attendees = make([]domain.Attendee, len(e.Attendees))
		copy(clone.Attendees, e.Attendees)
	}
	return &clone
}

func (r *stubEventRepo) Create(_ context.Context, event *domain.Event) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return nil, r.writeErr
	}
	r.seq++
	stored := cloneEvent(event)
	stored.ID = fmt.Sprintf("evt-%d", r.seq)
	r.events[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return cloneEvent(stored), nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return cloneEvent(e), nil
}

func (r *stubEventRepo) List(_ context.Context, offset, limit int) ([]*domain.Event, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*domain.Event, 0, len(r.order))
	for _, id := range r.order {
		if e, ok := r.events[id]; ok {
			all = append(all, cloneEvent(e))
		}
	}
	p := domain.Page{Limit: limit, Offset: offset}
	start, end := p.Window(len(all))
	return all[start:end], int64(len(all)), nil
}

func (r *stubEventRepo) Update(_ context.Context, event *domain.Event) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return nil, r.writeErr
	}
	stored, ok := r.events[event.ID]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	attendees := stored.Attendees
	updated := cloneEvent(event)
	updated.Attendees = attendees
	r.events[event.ID] = updated
	return cloneEvent(updated), nil
}

func (r *stubEventRepo) AppendAttendee(_ context.Context, eventID string, attendee domain.Attendee, enforceCapacity bool) (*domain.Event, error) {
	if r.appendHook != nil {
		hook := r.appendHook
		r.appendHook = nil
		hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return nil, r.appendErr
	}
	e, ok := r.events[eventID]
	if !ok || e.HasAttendee(attendee.Email) || (enforceCapacity && e.Full()) {
		r.guardHits++
		return nil, domain.ErrRSVPGuard
	}
	e.Attendees = append(e.Attendees, attendee)
	return cloneEvent(e), nil
}

func (r *stubEventRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *stubEventRepo) seed(e domain.Event) *domain.Event {
	created, _ := r.Create(context.Background(), &e)
	return created
}

// ---------------------------------------------------------------------------
// Collaborators
// ---------------------------------------------------------------------------

type stubNotifier struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (n *stubNotifier) Notify(msg ports.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

func (n *stubNotifier) all() []ports.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.Notification(nil), n.sent...)
}

type stubSigner struct {
	err error
}

func (s stubSigner) Sign(accountID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-" + accountID, nil
}

type stubImageStore struct {
	saved   []ports.ImageUpload
	saveErr error
	deleted []string
}

func (s *stubImageStore) Save(_ context.Context, upload ports.ImageUpload) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.saved = append(s.saved, upload)
	return fmt.Sprintf("/api/uploads/img-%d", len(s.saved)), nil
}

func (s *stubImageStore) Open(context.Context, string) (*ports.StoredImage, error) {
	return nil, domain.ErrImageNotFound
}

func (s *stubImageStore) Delete(_ context.Context, ref string) error {
	s.deleted = append(s.deleted, ref)
	return nil
}
