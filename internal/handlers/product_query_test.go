package handlers

import (
	"net/url"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildProductQueryDefaults(t *testing.T) {
	query := buildProductQuery(url.Values{})

	if query.Page != 1 {
		t.Fatalf("expected default page 1, got %d", query.Page)
	}
	if query.Limit != resultPerPage {
		t.Fatalf("expected default limit %d, got %d", resultPerPage, query.Limit)
	}
	if query.Skip() != 0 {
		t.Fatalf("expected skip 0 on first page, got %d", query.Skip())
	}
	if len(query.Filter) != 0 {
		t.Fatalf("expected empty filter, got %v", query.Filter)
	}
}

func TestBuildProductQueryNonNumericPageFallsBack(t *testing.T) {
	query := buildProductQuery(url.Values{"page": {"abc"}, "limit": {"-3"}})

	if query.Page != 1 {
		t.Fatalf("expected page fallback 1, got %d", query.Page)
	}
	if query.Limit != resultPerPage {
		t.Fatalf("expected limit fallback %d, got %d", resultPerPage, query.Limit)
	}
}

func TestBuildProductQuerySkipMath(t *testing.T) {
	query := buildProductQuery(url.Values{"page": {"3"}, "limit": {"6"}})

	if query.Skip() != 12 {
		t.Fatalf("expected skip 12 for page 3 size 6, got %d", query.Skip())
	}
}

func TestBuildProductQuerySearchIsCaseInsensitiveRegex(t *testing.T) {
	query := buildProductQuery(url.Values{"search": {"hoodie"}})

	name, ok := query.Filter["name"].(bson.M)
	if !ok {
		t.Fatalf("expected name predicate, got %v", query.Filter)
	}
	if name["$regex"] != "hoodie" || name["$options"] != "i" {
		t.Fatalf("expected case-insensitive regex on name, got %v", name)
	}
}

func TestBuildProductQueryControlKeysNeverFilter(t *testing.T) {
	query := buildProductQuery(url.Values{
		"search": {"tee"},
		"page":   {"2"},
		"limit":  {"10"},
	})

	for _, key := range []string{"search", "page", "limit"} {
		if _, ok := query.Filter[key]; ok {
			t.Fatalf("control key %q leaked into filter: %v", key, query.Filter)
		}
	}
}

func TestBuildProductQueryRangeOperators(t *testing.T) {
	query := buildProductQuery(url.Values{
		"price[gte]": {"199"},
		"price[lte]": {"999"},
	})

	price, ok := query.Filter["price"].(bson.M)
	if !ok {
		t.Fatalf("expected price bounds, got %v", query.Filter)
	}
	if price["$gte"] != 199.0 || price["$lte"] != 999.0 {
		t.Fatalf("expected translated range operators, got %v", price)
	}
}

func TestBuildProductQueryEqualityFilters(t *testing.T) {
	query := buildProductQuery(url.Values{
		"category": {"hoodies"},
		"stock":    {"5"},
	})

	if query.Filter["category"] != "hoodies" {
		t.Fatalf("expected category equality, got %v", query.Filter["category"])
	}
	if query.Filter["stock"] != 5.0 {
		t.Fatalf("expected numeric stock equality, got %v", query.Filter["stock"])
	}
}

func TestBuildProductQueryIgnoresUnknownFields(t *testing.T) {
	query := buildProductQuery(url.Values{
		"role":           {"admin"},
		"password[gte]":  {"1"},
		"unmapped":       {"x"},
		"ratings[bogus]": {"4"},
	})

	if len(query.Filter) != 0 {
		t.Fatalf("expected unknown fields ignored, got %v", query.Filter)
	}
}

func TestBuildProductQueryDeterministicSort(t *testing.T) {
	query := buildProductQuery(url.Values{})

	if len(query.Sort) != 2 {
		t.Fatalf("expected two sort keys, got %v", query.Sort)
	}
	if query.Sort[0].Key != "createdAt" || query.Sort[1].Key != "_id" {
		t.Fatalf("expected createdAt then _id tie-break, got %v", query.Sort)
	}
}
