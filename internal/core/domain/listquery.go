package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxMetaLimit = 100
	defaultSort  = "-createdAt"
)

// reservedKeys are query parameters consumed by pagination, sorting,
// search, projection and date bounding. They never become filters.
var reservedKeys = map[string]struct{}{
	"searchTerm": {},
	"sort":       {},
	"fields":     {},
	"page":       {},
	"limit":      {},
	"startDate":  {},
	"endDate":    {},
}

var dateOnlyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ListQuery is the parsed form of a flat request query map: equality
// filters, free-text search, a date range on one timestamp field, sort
// order, field projection and page/limit slicing.
type ListQuery struct {
	Filters map[string]string
	Search  string
	Sort    string
	Fields  []string
	Start   *time.Time
	End     *time.Time
	Page    int
	Limit   int
}

// ListMeta is the pagination metadata computed alongside a list result.
type ListMeta struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// ParseListQuery translates the raw query map into a ListQuery. Only keys
// in allowedFilters may remain as equality filters; unknown keys are
// rejected rather than silently passed through. The sentinel value "all"
// for role and status removes the constraint entirely.
func ParseListQuery(raw map[string]string, allowedFilters []string) (ListQuery, error) {
	allowed := make(map[string]struct{}, len(allowedFilters))
	for _, k := range allowedFilters {
		allowed[k] = struct{}{}
	}

	q := ListQuery{
		Filters: make(map[string]string),
		Sort:    defaultSort,
		Page:    defaultPage,
		Limit:   defaultLimit,
	}

	for key, value := range raw {
		if _, reserved := reservedKeys[key]; reserved {
			continue
		}
		if (key == "role" || key == "status") && value == "all" {
			continue
		}
		if _, ok := allowed[key]; !ok {
			return ListQuery{}, ValidationError(
				fmt.Sprintf("unsupported filter %q", key),
				ErrorSource{Path: key, Message: "unknown filter field"},
			)
		}
		q.Filters[key] = value
	}

	if s := raw["searchTerm"]; s != "" {
		q.Search = s
	}
	if s := raw["sort"]; s != "" {
		q.Sort = s
	}
	if f := raw["fields"]; f != "" {
		for _, field := range strings.Split(f, ",") {
			if field = strings.TrimSpace(field); field != "" {
				q.Fields = append(q.Fields, field)
			}
		}
	}

	if p, err := strconv.Atoi(raw["page"]); err == nil && p > 0 {
		q.Page = p
	}
	if l, err := strconv.Atoi(raw["limit"]); err == nil && l > 0 {
		q.Limit = l
	}

	start, end, err := dateBounds(raw["startDate"], raw["endDate"], time.Now().UTC())
	if err != nil {
		return ListQuery{}, err
	}
	q.Start, q.End = start, end

	return q, nil
}

// Skip is the number of documents skipped before the current page.
func (q ListQuery) Skip() int64 {
	return int64(q.Page-1) * int64(q.Limit)
}

// Meta computes pagination metadata for a total count obtained under the
// same filter predicate, pre-pagination. The reported limit is clamped to
// [1,100] independently of the limit applied to the data query, so an
// out-of-range request limit makes the two diverge. That inherited quirk
// is deliberate and pinned by tests.
func (q ListQuery) Meta(total int64) ListMeta {
	page := q.Page
	if page < 1 {
		page = defaultPage
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultLimit
	} else if limit > maxMetaLimit {
		limit = maxMetaLimit
	}

	totalPage := (total + int64(limit) - 1) / int64(limit)
	if totalPage < 1 {
		totalPage = 1
	}

	return ListMeta{Page: page, Limit: limit, Total: total, TotalPage: totalPage}
}

// dateBounds resolves the optional startDate/endDate pair. A bare
// YYYY-MM-DD is taken as UTC midnight (start) or UTC 23:59:59.999 (end)
// of that day; anything else must parse as RFC 3339. When only a start is
// given the range is closed at the end of today, UTC.
func dateBounds(startRaw, endRaw string, now time.Time) (*time.Time, *time.Time, error) {
	if startRaw == "" && endRaw == "" {
		return nil, nil, nil
	}

	var start, end *time.Time
	if startRaw != "" {
		t, err := parseBound(startRaw, false)
		if err != nil {
			return nil, nil, ValidationError("invalid startDate",
				ErrorSource{Path: "startDate", Message: err.Error()})
		}
		start = &t
	}
	if endRaw != "" {
		t, err := parseBound(endRaw, true)
		if err != nil {
			return nil, nil, ValidationError("invalid endDate",
				ErrorSource{Path: "endDate", Message: err.Error()})
		}
		end = &t
	}

	if start != nil && end == nil {
		t := endOfDay(now)
		end = &t
	}
	return start, end, nil
}

func parseBound(raw string, isEnd bool) (time.Time, error) {
	if dateOnlyRe.MatchString(raw) {
		day, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return time.Time{}, err
		}
		if isEnd {
			return endOfDay(day), nil
		}
		return day, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, time.UTC)
}
