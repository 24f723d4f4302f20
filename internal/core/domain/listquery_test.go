package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseListQuery_Defaults(t *testing.T) {
	q, err := ParseListQuery(map[string]string{}, nil)
	if err != nil {
		t.Fatalf("ParseListQuery returned error: %v", err)
	}
	if q.Page != 1 || q.Limit != 10 {
		t.Fatalf("expected page=1 limit=10, got page=%d limit=%d", q.Page, q.Limit)
	}
	if q.Sort != "-createdAt" {
		t.Fatalf("expected default sort -createdAt, got %q", q.Sort)
	}
	if len(q.Filters) != 0 {
		t.Fatalf("expected no filters, got %v", q.Filters)
	}
	if q.Start != nil || q.End != nil {
		t.Fatalf("expected no date bounds")
	}
}

func TestParseListQuery_ReservedKeysNeverFilter(t *testing.T) {
	raw := map[string]string{
		"searchTerm": "alice",
		"sort":       "name",
		"fields":     "name,email",
		"page":       "3",
		"limit":      "25",
		"role":       "ADMIN",
	}
	q, err := ParseListQuery(raw, []string{"role"})
	if err != nil {
		t.Fatalf("ParseListQuery returned error: %v", err)
	}
	if len(q.Filters) != 1 || q.Filters["role"] != "ADMIN" {
		t.Fatalf("expected only role filter, got %v", q.Filters)
	}
	if q.Search != "alice" || q.Sort != "name" {
		t.Fatalf("search/sort not picked up: %+v", q)
	}
	if q.Page != 3 || q.Limit != 25 {
		t.Fatalf("expected page=3 limit=25, got page=%d limit=%d", q.Page, q.Limit)
	}
	if len(q.Fields) != 2 || q.Fields[0] != "name" || q.Fields[1] != "email" {
		t.Fatalf("unexpected fields: %v", q.Fields)
	}
}

func TestParseListQuery_AllSentinelRemovesConstraint(t *testing.T) {
	q, err := ParseListQuery(map[string]string{"role": "all", "status": "all"}, []string{"role", "status"})
	if err != nil {
		t.Fatalf("ParseListQuery returned error: %v", err)
	}
	if len(q.Filters) != 0 {
		t.Fatalf("expected all sentinel to drop constraints, got %v", q.Filters)
	}
}

func TestParseListQuery_UnknownFilterRejected(t *testing.T) {
	_, err := ParseListQuery(map[string]string{"password": "x"}, []string{"role", "status"})
	if err == nil {
		t.Fatalf("expected error for unknown filter key")
	}
	var derr *Error
	if !errors.As(err, &derr) || derr.Kind != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(derr.Sources) != 1 || derr.Sources[0].Path != "password" {
		t.Fatalf("expected errorSource naming the key, got %+v", derr.Sources)
	}
}

func TestParseListQuery_InvalidPageAndLimitIgnored(t *testing.T) {
	q, err := ParseListQuery(map[string]string{"page": "abc", "limit": "-5"}, nil)
	if err != nil {
		t.Fatalf("ParseListQuery returned error: %v", err)
	}
	if q.Page != 1 || q.Limit != 10 {
		t.Fatalf("expected defaults for bad page/limit, got page=%d limit=%d", q.Page, q.Limit)
	}
}

func TestListQuery_Skip(t *testing.T) {
	cases := []struct {
		page, limit int
		want        int64
	}{
		{1, 10, 0},
		{2, 10, 10},
		{5, 25, 100},
	}
	for _, tc := range cases {
		q := ListQuery{Page: tc.page, Limit: tc.limit}
		if got := q.Skip(); got != tc.want {
			t.Errorf("Skip(page=%d,limit=%d) = %d, want %d", tc.page, tc.limit, got, tc.want)
		}
	}
}

func TestListQuery_MetaClampsReportedLimit(t *testing.T) {
	// Meta clamps limit to [1,100] even though the data query keeps the
	// raw value, so the two diverge for out-of-range requests.
	q := ListQuery{Page: 1, Limit: 500}
	meta := q.Meta(1000)
	if meta.Limit != 100 {
		t.Fatalf("expected reported limit 100, got %d", meta.Limit)
	}
	if meta.TotalPage != 10 {
		t.Fatalf("expected totalPage 10, got %d", meta.TotalPage)
	}
}

func TestListQuery_MetaTotalPageNeverZero(t *testing.T) {
	q := ListQuery{Page: 1, Limit: 10}
	meta := q.Meta(0)
	if meta.TotalPage != 1 {
		t.Fatalf("expected totalPage 1 for empty result, got %d", meta.TotalPage)
	}
}

func TestListQuery_MetaCeilingDivision(t *testing.T) {
	q := ListQuery{Page: 2, Limit: 10}
	meta := q.Meta(101)
	if meta.TotalPage != 11 {
		t.Fatalf("expected totalPage 11 for 101 docs at limit 10, got %d", meta.TotalPage)
	}
	if meta.Page != 2 || meta.Total != 101 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestDateBounds_DateOnly(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	start, end, err := dateBounds("2026-01-02", "2026-01-05", now)
	if err != nil {
		t.Fatalf("dateBounds returned error: %v", err)
	}
	wantStart := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, 1, 5, 23, 59, 59, 999_000_000, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Fatalf("end = %v, want %v", end, wantEnd)
	}
}

func TestDateBounds_StartOnlyClosesAtEndOfToday(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	start, end, err := dateBounds("2026-03-01", "", now)
	if err != nil {
		t.Fatalf("dateBounds returned error: %v", err)
	}
	if start == nil || end == nil {
		t.Fatalf("expected both bounds, got start=%v end=%v", start, end)
	}
	wantEnd := time.Date(2026, 3, 15, 23, 59, 59, 999_000_000, time.UTC)
	if !end.Equal(wantEnd) {
		t.Fatalf("end = %v, want %v", end, wantEnd)
	}
}

func TestDateBounds_RFC3339Passthrough(t *testing.T) {
	now := time.Now().UTC()
	start, _, err := dateBounds("2026-02-01T08:30:00Z", "2026-02-02T00:00:00Z", now)
	if err != nil {
		t.Fatalf("dateBounds returned error: %v", err)
	}
	want := time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Fatalf("start = %v, want %v", start, want)
	}
}

func TestDateBounds_InvalidDateRejected(t *testing.T) {
	now := time.Now().UTC()
	if _, _, err := dateBounds("not-a-date", "", now); err == nil {
		t.Fatalf("expected error for malformed startDate")
	}
}
