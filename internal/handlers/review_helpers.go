package handlers

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

// upsertReview enforces one review per user: an existing review by the same
// user is replaced in place, otherwise the review is appended.
func upsertReview(reviews []models.Review, incoming models.Review) []models.Review {
	for i := range reviews {
		if reviews[i].User == incoming.User {
			reviews[i].Rating = incoming.Rating
			reviews[i].Comment = incoming.Comment
			reviews[i].Name = incoming.Name
			return reviews
		}
	}
	return append(reviews, incoming)
}

// removeReview drops the given user's review, if any.
func removeReview(reviews []models.Review, userID primitive.ObjectID) []models.Review {
	kept := make([]models.Review, 0, len(reviews))
	for _, review := range reviews {
		if review.User != userID {
			kept = append(kept, review)
		}
	}
	return kept
}

// aggregateRating recomputes the product aggregate from the current review
// list. An empty list yields a rating of 0, never a division by zero.
func aggregateRating(reviews []models.Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}

	sum := 0.0
	for _, review := range reviews {
		sum += review.Rating
	}
	return sum / float64(len(reviews)), len(reviews)
}
