package repositories

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default paging values applied when the query string omits or mangles them.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListParams captures the filter/sort/pagination inputs of the idea list
// endpoint. Zero-value string fields mean "no filter".
type ListParams struct {
	Page     int
	Limit    int
	Category string
	Search   string
	User     string
	SortBy   string
	Order    string
}

// Normalize fills defaults for missing or invalid values. The limit is
// deliberately not capped: callers may request arbitrarily large pages, same
// as the upstream service.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.SortBy == "" {
		p.SortBy = "createdAt"
	}
	if p.Order != "asc" {
		p.Order = "desc"
	}
	return p
}

// Filter builds the Mongo filter document. Search is a case-insensitive
// substring match over title OR description.
func (p ListParams) Filter() bson.M {
	filter := bson.M{}
	if p.Category != "" {
		filter["category"] = p.Category
	}
	if p.Search != "" {
		pattern := regexp.QuoteMeta(p.Search)
		filter["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	if p.User != "" {
		// A malformed owner id matches nothing rather than erroring.
		id, err := primitive.ObjectIDFromHex(p.User)
		if err != nil {
			id = primitive.NilObjectID
		}
		filter["user"] = id
	}
	return filter
}

// Sort builds the single-field sort document. Unknown field names are passed
// through and yield store-defined order.
func (p ListParams) Sort() bson.D {
	order := -1
	if p.Order == "asc" {
		order = 1
	}
	return bson.D{{Key: p.SortBy, Value: order}}
}

// Skip returns the offset of the first record of the requested page.
func (p ListParams) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// TotalPages returns ceil(total/limit).
func (p ListParams) TotalPages(total int64) int64 {
	limit := int64(p.Limit)
	return (total + limit - 1) / limit
}
