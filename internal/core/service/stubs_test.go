package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/ports"
)

// --- user repository stub ---

type stubUserRepo struct {
	users   map[string]*domain.User // keyed by email
	nextID  int
	listOut []*domain.User
	total   int64
	lastQ   domain.ListQuery

	setPasswordCalls int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Auths = append([]domain.AuthProvider(nil), u.Auths...)
	return &clone
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	r.nextID++
	if u.ID == "" {
		u.ID = fmt.Sprintf("id-%d", r.nextID)
	}
	r.users[u.Email] = cloneUser(u)
	return u
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	created := cloneUser(user)
	r.nextID++
	created.ID = fmt.Sprintf("id-%d", r.nextID)
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	r.users[created.Email] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID != id {
			continue
		}
		if upd.Name != nil {
			u.Name = *upd.Name
		}
		if upd.Picture != nil {
			u.Picture = *upd.Picture
		}
		if upd.Role != nil {
			u.Role = *upd.Role
		}
		if upd.Status != nil {
			u.Status = *upd.Status
		}
		if upd.IsVerified != nil {
			u.IsVerified = *upd.IsVerified
		}
		u.UpdatedAt = time.Now().UTC()
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SetPassword(_ context.Context, id, hash string, provider *domain.AuthProvider) error {
	r.setPasswordCalls++
	for _, u := range r.users {
		if u.ID != id {
			continue
		}
		u.Password = hash
		if provider != nil {
			u.Auths = append(u.Auths, *provider)
		}
		return nil
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) MarkVerified(_ context.Context, email string) error {
	if u, ok := r.users[email]; ok {
		u.IsVerified = true
		return nil
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, q domain.ListQuery) ([]*domain.User, int64, error) {
	r.lastQ = q
	return r.listOut, r.total, nil
}

// --- activity log recorder ---

type recorderLogs struct {
	entries []*domain.ActivityLog
}

func (l *recorderLogs) Record(_ context.Context, entry *domain.ActivityLog) {
	l.entries = append(l.entries, entry)
}

func (l *recorderLogs) ListAll(context.Context, map[string]string) ([]*domain.ActivityLog, domain.ListMeta, error) {
	return nil, domain.ListMeta{}, nil
}

func (l *recorderLogs) ListByUser(context.Context, string, map[string]string) ([]*domain.ActivityLog, domain.ListMeta, error) {
	return nil, domain.ListMeta{}, nil
}

func (l *recorderLogs) ListByType(context.Context, domain.ActivityType, map[string]string) ([]*domain.ActivityLog, domain.ListMeta, error) {
	return nil, domain.ListMeta{}, nil
}

func (l *recorderLogs) Recent(context.Context, int) ([]*domain.ActivityLog, error) {
	return nil, nil
}

func (l *recorderLogs) Cleanup(context.Context, int) (int64, error) {
	return 0, nil
}

func (l *recorderLogs) last() *domain.ActivityLog {
	if len(l.entries) == 0 {
		return nil
	}
	return l.entries[len(l.entries)-1]
}

func (l *recorderLogs) hasType(t domain.ActivityType) bool {
	for _, e := range l.entries {
		if e.ActivityType == t {
			return true
		}
	}
	return false
}

// --- otp stubs ---

type stubOTPService struct {
	sendCalls []string
	sendErr   error
}

func (s *stubOTPService) Send(_ context.Context, email string) error {
	s.sendCalls = append(s.sendCalls, email)
	return s.sendErr
}

func (s *stubOTPService) Verify(context.Context, string, string, ports.RequestMeta) error {
	return nil
}

type otpEntry struct {
	code     string
	expireAt time.Time
}

// stubOTPStore mimics expiring keys; now is swappable so tests can move
// time past a TTL.
type stubOTPStore struct {
	entries map[string]otpEntry
	now     func() time.Time
}

func newStubOTPStore() *stubOTPStore {
	return &stubOTPStore{entries: make(map[string]otpEntry), now: time.Now}
}

func (s *stubOTPStore) Set(_ context.Context, email, code string, ttl time.Duration) error {
	s.entries[email] = otpEntry{code: code, expireAt: s.now().Add(ttl)}
	return nil
}

func (s *stubOTPStore) Get(_ context.Context, email string) (string, error) {
	e, ok := s.entries[email]
	if !ok || s.now().After(e.expireAt) {
		return "", domain.ErrOTPInvalid
	}
	return e.code, nil
}

func (s *stubOTPStore) Del(_ context.Context, email string) error {
	delete(s.entries, email)
	return nil
}

// --- mailer stub ---

type sentMail struct {
	to   string
	code string
	link string
}

type stubMailer struct {
	otps   []sentMail
	resets []sentMail
	err    error
}

func (m *stubMailer) SendOTP(_ context.Context, to, _ string, code string) error {
	if m.err != nil {
		return m.err
	}
	m.otps = append(m.otps, sentMail{to: to, code: code})
	return nil
}

func (m *stubMailer) SendPasswordReset(_ context.Context, to, _ string, resetLink string) error {
	if m.err != nil {
		return m.err
	}
	m.resets = append(m.resets, sentMail{to: to, link: resetLink})
	return nil
}

// --- helpers ---

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
