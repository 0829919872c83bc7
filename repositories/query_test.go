package repositories

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeDefaults(t *testing.T) {
	p := ListParams{}.Normalize()

	if p.Page != 1 || p.Limit != 10 {
		t.Fatalf("got page=%d limit=%d, want 1/10", p.Page, p.Limit)
	}
	if p.SortBy != "createdAt" || p.Order != "desc" {
		t.Fatalf("got sortBy=%q order=%q, want createdAt/desc", p.SortBy, p.Order)
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	p := ListParams{Page: -3, Limit: 0, Order: "sideways"}.Normalize()

	if p.Page != 1 || p.Limit != 10 {
		t.Fatalf("got page=%d limit=%d, want defaults", p.Page, p.Limit)
	}
	if p.Order != "desc" {
		t.Fatalf("got order=%q, want desc", p.Order)
	}
}

func TestNormalizeDoesNotCapLimit(t *testing.T) {
	p := ListParams{Limit: 100000}.Normalize()
	if p.Limit != 100000 {
		t.Fatalf("limit was capped to %d", p.Limit)
	}
}

func TestFilterEmpty(t *testing.T) {
	filter := ListParams{}.Normalize().Filter()
	if len(filter) != 0 {
		t.Fatalf("got non-empty filter %v", filter)
	}
}

func TestFilterCategoryExactMatch(t *testing.T) {
	filter := ListParams{Category: "energy"}.Normalize().Filter()
	if filter["category"] != "energy" {
		t.Fatalf("got %v", filter)
	}
}

func TestFilterSearchMatchesTitleOrDescription(t *testing.T) {
	filter := ListParams{Search: "foo"}.Normalize().Filter()

	or, ok := filter["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected two-branch $or, got %v", filter)
	}
	title := or[0].(bson.M)["title"].(bson.M)
	if title["$regex"] != "foo" || title["$options"] != "i" {
		t.Fatalf("title branch %v is not a case-insensitive substring match", title)
	}
	desc := or[1].(bson.M)["description"].(bson.M)
	if desc["$regex"] != "foo" || desc["$options"] != "i" {
		t.Fatalf("description branch %v is not a case-insensitive substring match", desc)
	}
}

func TestFilterSearchEscapesRegexMeta(t *testing.T) {
	filter := ListParams{Search: "c++ (v2)"}.Normalize().Filter()
	or := filter["$or"].(bson.A)
	title := or[0].(bson.M)["title"].(bson.M)
	if title["$regex"] != `c\+\+ \(v2\)` {
		t.Fatalf("got pattern %q, want meta characters escaped", title["$regex"])
	}
}

func TestFilterOwner(t *testing.T) {
	id := primitive.NewObjectID()
	filter := ListParams{User: id.Hex()}.Normalize().Filter()
	if filter["user"] != id {
		t.Fatalf("got %v, want owner filter on %s", filter, id.Hex())
	}
}

func TestFilterMalformedOwnerMatchesNothing(t *testing.T) {
	filter := ListParams{User: "not-a-hex-id"}.Normalize().Filter()
	if filter["user"] != primitive.NilObjectID {
		t.Fatalf("got %v, want nil ObjectID", filter["user"])
	}
}

func TestSortDirections(t *testing.T) {
	desc := ListParams{SortBy: "views"}.Normalize().Sort()
	if !reflect.DeepEqual(desc, bson.D{{Key: "views", Value: -1}}) {
		t.Fatalf("got %v", desc)
	}

	asc := ListParams{SortBy: "views", Order: "asc"}.Normalize().Sort()
	if !reflect.DeepEqual(asc, bson.D{{Key: "views", Value: 1}}) {
		t.Fatalf("got %v", asc)
	}
}

func TestSortUnknownFieldPassesThrough(t *testing.T) {
	sort := ListParams{SortBy: "flibbertigibbet"}.Normalize().Sort()
	if sort[0].Key != "flibbertigibbet" {
		t.Fatalf("got %v, want unknown field passed through", sort)
	}
}

func TestSkip(t *testing.T) {
	cases := []struct {
		page, limit int
		want        int64
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 7, 14},
	}
	for _, c := range cases {
		got := ListParams{Page: c.page, Limit: c.limit}.Normalize().Skip()
		if got != c.want {
			t.Errorf("page=%d limit=%d: got skip=%d, want %d", c.page, c.limit, got, c.want)
		}
	}
}

func TestTotalPagesCeil(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{21, 7, 3},
	}
	for _, c := range cases {
		got := ListParams{Limit: c.limit}.Normalize().TotalPages(c.total)
		if got != c.want {
			t.Errorf("total=%d limit=%d: got %d, want %d", c.total, c.limit, got, c.want)
		}
	}
}
