package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

func TestUpsertReviewAppendsNewReviewer(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	reviews := []models.Review{{User: alice, Name: "Alice", Rating: 5, Comment: "great"}}
	reviews = upsertReview(reviews, models.Review{User: bob, Name: "Bob", Rating: 3, Comment: "ok"})

	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}
}

func TestUpsertReviewReplacesExistingReviewer(t *testing.T) {
	alice := primitive.NewObjectID()

	reviews := []models.Review{{User: alice, Name: "Alice", Rating: 4, Comment: "good"}}
	reviews = upsertReview(reviews, models.Review{User: alice, Name: "Alice", Rating: 2, Comment: "changed my mind"})

	if len(reviews) != 1 {
		t.Fatalf("expected exactly one review from the same user, got %d", len(reviews))
	}
	if reviews[0].Rating != 2 {
		t.Fatalf("expected replaced rating 2, got %v", reviews[0].Rating)
	}
	if reviews[0].Comment != "changed my mind" {
		t.Fatalf("expected replaced comment, got %q", reviews[0].Comment)
	}

	ratings, count := aggregateRating(reviews)
	if ratings != 2 || count != 1 {
		t.Fatalf("expected aggregate (2, 1), got (%v, %d)", ratings, count)
	}
}

func TestAggregateRatingAverages(t *testing.T) {
	reviews := []models.Review{
		{User: primitive.NewObjectID(), Rating: 5},
		{User: primitive.NewObjectID(), Rating: 4},
		{User: primitive.NewObjectID(), Rating: 3},
	}

	ratings, count := aggregateRating(reviews)
	if count != 3 {
		t.Fatalf("expected count 3, got %d", count)
	}
	if ratings != 4 {
		t.Fatalf("expected average 4, got %v", ratings)
	}
}

func TestAggregateRatingEmptyListIsZero(t *testing.T) {
	ratings, count := aggregateRating(nil)
	if ratings != 0 || count != 0 {
		t.Fatalf("expected (0, 0) for empty list, got (%v, %d)", ratings, count)
	}
}

func TestRemoveReviewRecomputesFromRemaining(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	reviews := []models.Review{
		{User: alice, Rating: 5},
		{User: bob, Rating: 1},
	}

	reviews = removeReview(reviews, bob)
	ratings, count := aggregateRating(reviews)
	if count != 1 || ratings != 5 {
		t.Fatalf("expected (5, 1) after removal, got (%v, %d)", ratings, count)
	}

	reviews = removeReview(reviews, alice)
	ratings, count = aggregateRating(reviews)
	if count != 0 || ratings != 0 {
		t.Fatalf("expected (0, 0) after removing last review, got (%v, %d)", ratings, count)
	}
}

func TestRemoveReviewUnknownUserIsNoop(t *testing.T) {
	alice := primitive.NewObjectID()

	reviews := []models.Review{{User: alice, Rating: 4}}
	reviews = removeReview(reviews, primitive.NewObjectID())

	if len(reviews) != 1 {
		t.Fatalf("expected review list unchanged, got %d entries", len(reviews))
	}
}
