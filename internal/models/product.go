package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categories is the fixed product category enumeration.
var Categories = []string{"shortsleeves", "longsleeves", "sweatshirt", "hoodies"}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Review is embedded in a product. A user holds at most one review per
// product; a second submission replaces the first.
type Review struct {
	User    primitive.ObjectID `bson:"user" json:"user"`
	Name    string             `bson:"name" json:"name"`
	Rating  float64            `bson:"rating" json:"rating"`
	Comment string             `bson:"comment" json:"comment"`
}

type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Price           float64            `bson:"price" json:"price"`
	Description     string             `bson:"description" json:"description"`
	Photos          []Photo            `bson:"photos" json:"photos"`
	Category        string             `bson:"category" json:"category"`
	Stock           int                `bson:"stock" json:"stock"`
	Brand           string             `bson:"brand" json:"brand"`
	Ratings         float64            `bson:"ratings" json:"ratings"`
	NumberOfReviews int                `bson:"numberOfReviews" json:"numberOfReviews"`
	Reviews         []Review           `bson:"reviews" json:"reviews"`
	User            primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
