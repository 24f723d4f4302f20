package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/ports"
)

type stubLogRepo struct {
	inserted  []*domain.ActivityLog
	insertErr error

	listOut   []*domain.ActivityLog
	total     int64
	lastQ     domain.ListQuery
	lastScope ports.ActivityLogScope

	deleted    int64
	lastCutoff time.Time
}

func (r *stubLogRepo) Insert(_ context.Context, entry *domain.ActivityLog) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, entry)
	return nil
}

func (r *stubLogRepo) List(_ context.Context, q domain.ListQuery, scope ports.ActivityLogScope) ([]*domain.ActivityLog, int64, error) {
	r.lastQ = q
	r.lastScope = scope
	return r.listOut, r.total, nil
}

func (r *stubLogRepo) Recent(_ context.Context, limit int) ([]*domain.ActivityLog, error) {
	if int64(limit) < r.total {
		return r.listOut[:limit], nil
	}
	return r.listOut, nil
}

func (r *stubLogRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.lastCutoff = cutoff
	return r.deleted, nil
}

func TestActivityLogService_Record_SetsTimestamp(t *testing.T) {
	repo := &stubLogRepo{}
	svc := NewActivityLogService(repo, zerolog.Nop(), nil)

	svc.Record(context.Background(), &domain.ActivityLog{
		UserID:       "u-1",
		ActivityType: domain.ActivityUserLogin,
	})
	if len(repo.inserted) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.inserted))
	}
	if repo.inserted[0].CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not set")
	}
}

func TestActivityLogService_Record_SwallowsRepoFailure(t *testing.T) {
	repo := &stubLogRepo{insertErr: errors.New("mongo down")}
	svc := NewActivityLogService(repo, zerolog.Nop(), nil)

	// Must not panic or surface the error in any way.
	svc.Record(context.Background(), &domain.ActivityLog{
		UserID:       "u-1",
		ActivityType: domain.ActivityUserLogin,
	})
}

func TestActivityLogService_Record_CountsDrops(t *testing.T) {
	repo := &stubLogRepo{insertErr: errors.New("mongo down")}
	drops := 0
	svc := NewActivityLogService(repo, zerolog.Nop(), func() { drops++ })

	entry := &domain.ActivityLog{UserID: "u-1", ActivityType: domain.ActivityUserLogin}
	svc.Record(context.Background(), entry)
	svc.Record(context.Background(), entry)
	if drops != 2 {
		t.Fatalf("expected 2 drops counted, got %d", drops)
	}

	// A successful write is not a drop.
	repo.insertErr = nil
	svc.Record(context.Background(), entry)
	if drops != 2 {
		t.Fatalf("successful write counted as drop: %d", drops)
	}
}

func TestActivityLogService_ListByType_InvalidType(t *testing.T) {
	svc := NewActivityLogService(&stubLogRepo{}, zerolog.Nop(), nil)

	_, _, err := svc.ListByType(context.Background(), "NOT_A_TYPE", nil)
	var derr *domain.Error
	if !errors.As(err, &derr) || derr.Kind != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestActivityLogService_ListByUser_ScopesQuery(t *testing.T) {
	repo := &stubLogRepo{total: 3}
	svc := NewActivityLogService(repo, zerolog.Nop(), nil)

	_, meta, err := svc.ListByUser(context.Background(), "u-7", map[string]string{"activityType": "USER_LOGIN"})
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}
	if repo.lastScope.UserID != "u-7" {
		t.Fatalf("scope not applied: %+v", repo.lastScope)
	}
	if repo.lastQ.Filters["activityType"] != "USER_LOGIN" {
		t.Fatalf("filter not forwarded: %+v", repo.lastQ)
	}
	if meta.Total != 3 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestActivityLogService_Recent_DefaultLimit(t *testing.T) {
	repo := &stubLogRepo{
		listOut: make([]*domain.ActivityLog, 10),
		total:   10,
	}
	svc := NewActivityLogService(repo, zerolog.Nop(), nil)

	entries, err := svc.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected default limit 5, got %d", len(entries))
	}
}

func TestActivityLogService_Cleanup_DefaultNinetyDays(t *testing.T) {
	repo := &stubLogRepo{deleted: 12}
	svc := NewActivityLogService(repo, zerolog.Nop(), nil)

	deleted, err := svc.Cleanup(context.Background(), 0)
	if err != nil {
		t.Fatalf("Cleanup returned error: %v", err)
	}
	if deleted != 12 {
		t.Fatalf("expected deleted count 12, got %d", deleted)
	}

	want := time.Now().UTC().AddDate(0, 0, -90)
	if diff := repo.lastCutoff.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("cutoff not ~90 days back: %v", repo.lastCutoff)
	}
}

func TestActivityLogService_Cleanup_ExplicitWindow(t *testing.T) {
	repo := &stubLogRepo{}
	svc := NewActivityLogService(repo, zerolog.Nop(), nil)

	if _, err := svc.Cleanup(context.Background(), 7); err != nil {
		t.Fatalf("Cleanup returned error: %v", err)
	}
	want := time.Now().UTC().AddDate(0, 0, -7)
	if diff := repo.lastCutoff.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("cutoff not ~7 days back: %v", repo.lastCutoff)
	}
}
