package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/middleware"
	"storefront/internal/models"
)

type addReviewRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Rating    float64 `json:"rating" binding:"required,gte=1,lte=5"`
	Comment   string  `json:"comment" binding:"required"`
}

// AddReview upserts the caller's review on a product and recomputes the
// aggregate rating and review count.
func AddReview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /review"
		defer handlePanic(c, route)

		user, ok := middleware.UserFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "login first to access this page")
			return
		}

		var req addReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.ProductID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			respondWithError(c, http.StatusNotFound, route, "no product found with this id")
			return
		}

		reviews := upsertReview(product.Reviews, models.Review{
			User:    user.ID,
			Name:    user.Name,
			Rating:  req.Rating,
			Comment: strings.TrimSpace(req.Comment),
		})
		ratings, count := aggregateRating(reviews)

		if _, err := db.Collection("products").UpdateByID(ctx, productID, bson.M{"$set": bson.M{
			"reviews":         reviews,
			"ratings":         ratings,
			"numberOfReviews": count,
		}}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] review upserted, product=%s reviews=%d", route, productID.Hex(), count)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// DeleteReview removes the caller's review and recomputes the aggregate from
// the remaining reviews, falling back to 0 when none are left.
func DeleteReview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /review"
		defer handlePanic(c, route)

		user, ok := middleware.UserFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "login first to access this page")
			return
		}

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Query("productId")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			respondWithError(c, http.StatusNotFound, route, "no product found with this id")
			return
		}

		reviews := removeReview(product.Reviews, user.ID)
		ratings, count := aggregateRating(reviews)

		if _, err := db.Collection("products").UpdateByID(ctx, productID, bson.M{"$set": bson.M{
			"reviews":         reviews,
			"ratings":         ratings,
			"numberOfReviews": count,
		}}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func GetProductReviews(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /reviews"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Query("productId")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			respondWithError(c, http.StatusNotFound, route, "no product found with this id")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "reviews": product.Reviews})
	}
}
