package mongo

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/userhub/dashboard-api/internal/core/domain"
)

// buildFilter translates the parsed list query into the bson predicate
// shared by the data query and the total count: equality filters, the
// case-insensitive search OR, and the date range on dateField.
func buildFilter(q domain.ListQuery, searchFields []string, dateField string) bson.M {
	filter := bson.M{}

	for key, value := range q.Filters {
		filter[key] = filterValue(value)
	}

	if q.Search != "" {
		or := make(bson.A, 0, len(searchFields))
		for _, field := range searchFields {
			or = append(or, bson.M{field: bson.M{
				"$regex":   regexp.QuoteMeta(q.Search),
				"$options": "i",
			}})
		}
		filter["$or"] = or
	}

	if q.Start != nil || q.End != nil {
		rng := bson.M{}
		if q.Start != nil {
			rng["$gte"] = *q.Start
		}
		if q.End != nil {
			rng["$lte"] = *q.End
		}
		filter[dateField] = rng
	}

	return filter
}

// filterValue maps boolean-looking query values onto real booleans so
// filters like isVerified=true match the stored type.
func filterValue(v string) any {
	switch v {
	case "true":
		return true
	case "false":
		return false
	}
	return v
}

// findOptions applies sort, projection and page/limit slicing. The data
// query uses the raw limit; metadata clamping happens in domain.ListMeta.
func findOptions(q domain.ListQuery) *options.FindOptions {
	opts := options.Find().
		SetSort(sortDoc(q.Sort)).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit))

	if len(q.Fields) > 0 {
		projection := bson.M{}
		for _, field := range q.Fields {
			projection[field] = 1
		}
		opts.SetProjection(projection)
	}
	return opts
}

// sortDoc parses a comma-separated sort spec where a "-" prefix means
// descending, e.g. "-createdAt,name".
func sortDoc(spec string) bson.D {
	var d bson.D
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "-") {
			d = append(d, bson.E{Key: part[1:], Value: -1})
		} else {
			d = append(d, bson.E{Key: part, Value: 1})
		}
	}
	if len(d) == 0 {
		d = bson.D{{Key: "createdAt", Value: -1}}
	}
	return d
}
