package handlers

import (
	"net/url"
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
)

// resultPerPage is the default page size for the public product listing.
const resultPerPage = 6

// filterableFields whitelists the product fields accepted as query filters.
// The value marks numeric fields, which support range operators.
var filterableFields = map[string]bool{
	"category": false,
	"brand":    false,
	"price":    true,
	"ratings":  true,
	"stock":    true,
}

var rangeKeyPattern = regexp.MustCompile(`^([a-z]+)\[(gte|lte|gt|lt)\]$`)

// productQuery is the query descriptor built from request parameters:
// predicate, sort and pagination in one value, handed to the collection.
type productQuery struct {
	Filter bson.M
	Sort   bson.D
	Page   int64
	Limit  int64
}

func (q productQuery) Skip() int64 {
	return (q.Page - 1) * q.Limit
}

// buildProductQuery translates URL query parameters into a productQuery.
// Unknown fields are ignored, control keys (search, page, limit) never leak
// into the predicate, and the sort carries an _id tie-break so repeated
// queries page deterministically.
func buildProductQuery(values url.Values) productQuery {
	filter := bson.M{}

	if search := values.Get("search"); search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}

	for key := range values {
		if key == "search" || key == "page" || key == "limit" {
			continue
		}

		value := values.Get(key)
		if value == "" {
			continue
		}

		if match := rangeKeyPattern.FindStringSubmatch(key); match != nil {
			field, op := match[1], match[2]
			numeric, ok := filterableFields[field]
			if !ok || !numeric {
				continue
			}
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil {
				continue
			}
			bounds, ok := filter[field].(bson.M)
			if !ok {
				bounds = bson.M{}
				filter[field] = bounds
			}
			bounds["$"+op] = parsed
			continue
		}

		numeric, ok := filterableFields[key]
		if !ok {
			continue
		}
		if numeric {
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil {
				continue
			}
			filter[key] = parsed
		} else {
			filter[key] = value
		}
	}

	return productQuery{
		Filter: filter,
		Sort:   bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
		Page:   parsePositiveInt(values.Get("page"), 1),
		Limit:  parsePositiveInt(values.Get("limit"), resultPerPage),
	}
}

func parsePositiveInt(value string, fallback int64) int64 {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}
