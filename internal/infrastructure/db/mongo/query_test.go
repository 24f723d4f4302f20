package mongo

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/userhub/dashboard-api/internal/core/domain"
)

func TestBuildFilter_EqualityAndBooleans(t *testing.T) {
	q := domain.ListQuery{Filters: map[string]string{
		"role":       "ADMIN",
		"isVerified": "true",
	}}

	filter := buildFilter(q, nil, "createdAt")
	if filter["role"] != "ADMIN" {
		t.Fatalf("role filter lost: %v", filter)
	}
	if filter["isVerified"] != true {
		t.Fatalf("boolean-looking value not coerced: %v", filter["isVerified"])
	}
}

func TestBuildFilter_SearchORsAcrossFields(t *testing.T) {
	q := domain.ListQuery{Filters: map[string]string{}, Search: "ali"}

	filter := buildFilter(q, []string{"name", "email"}, "createdAt")
	or, ok := filter["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected $or over two fields, got %v", filter["$or"])
	}
	want := bson.M{"name": bson.M{"$regex": "ali", "$options": "i"}}
	if !reflect.DeepEqual(or[0], want) {
		t.Fatalf("unexpected search clause: %v", or[0])
	}
}

func TestBuildFilter_SearchEscapesRegexMeta(t *testing.T) {
	q := domain.ListQuery{Filters: map[string]string{}, Search: "a.b+c"}

	filter := buildFilter(q, []string{"name"}, "createdAt")
	or := filter["$or"].(bson.A)
	clause := or[0].(bson.M)["name"].(bson.M)
	if clause["$regex"] != `a\.b\+c` {
		t.Fatalf("regex metacharacters not escaped: %v", clause["$regex"])
	}
}

func TestBuildFilter_DateRange(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 23, 59, 59, 999_000_000, time.UTC)
	q := domain.ListQuery{Filters: map[string]string{}, Start: &start, End: &end}

	filter := buildFilter(q, nil, "createdAt")
	rng, ok := filter["createdAt"].(bson.M)
	if !ok {
		t.Fatalf("no date range on createdAt: %v", filter)
	}
	if rng["$gte"] != start || rng["$lte"] != end {
		t.Fatalf("unexpected range: %v", rng)
	}
}

func TestBuildFilter_EmptyQuery(t *testing.T) {
	q := domain.ListQuery{Filters: map[string]string{}}
	filter := buildFilter(q, []string{"name"}, "createdAt")
	if len(filter) != 0 {
		t.Fatalf("expected empty filter, got %v", filter)
	}
}

func TestSortDoc(t *testing.T) {
	cases := []struct {
		spec string
		want bson.D
	}{
		{"-createdAt", bson.D{{Key: "createdAt", Value: -1}}},
		{"name", bson.D{{Key: "name", Value: 1}}},
		{"-createdAt, name", bson.D{{Key: "createdAt", Value: -1}, {Key: "name", Value: 1}}},
		{"", bson.D{{Key: "createdAt", Value: -1}}},
	}
	for _, tc := range cases {
		if got := sortDoc(tc.spec); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("sortDoc(%q) = %v, want %v", tc.spec, got, tc.want)
		}
	}
}

func TestFindOptions_UsesRawLimit(t *testing.T) {
	q := domain.ListQuery{Page: 3, Limit: 500, Sort: "-createdAt"}
	opts := findOptions(q)

	if opts.Limit == nil || *opts.Limit != 500 {
		t.Fatalf("data query must keep the raw limit, got %v", opts.Limit)
	}
	if opts.Skip == nil || *opts.Skip != 1000 {
		t.Fatalf("unexpected skip: %v", opts.Skip)
	}
}

func TestFindOptions_Projection(t *testing.T) {
	q := domain.ListQuery{Page: 1, Limit: 10, Sort: "-createdAt", Fields: []string{"name", "email"}}
	opts := findOptions(q)

	projection, ok := opts.Projection.(bson.M)
	if !ok || len(projection) != 2 || projection["name"] != 1 {
		t.Fatalf("unexpected projection: %v", opts.Projection)
	}
}
