package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

type updateOrderRequest struct {
	OrderStatus string `json:"orderStatus" binding:"required"`
}

func AdminGetAllOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/orders"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}

// AdminUpdateOrder advances the order status. Delivered is terminal; any
// update attempt against a delivered order is rejected and the status left
// unchanged. On an accepted transition each line item's product stock is
// decremented by the ordered quantity.
func AdminUpdateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/order/:id"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req updateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
			respondWithError(c, http.StatusNotFound, route, "please check order id")
			return
		}

		if err := checkTransition(order.OrderStatus, req.OrderStatus); err != nil {
			var transitionErr invalidTransitionError
			if errors.As(err, &transitionErr) {
				respondWithError(c, http.StatusConflict, route, "order is already marked as delivered")
				return
			}
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		for _, item := range order.OrderItems {
			res, err := db.Collection("products").UpdateOne(
				ctx,
				bson.M{"_id": item.Product},
				bson.M{"$inc": bson.M{"stock": -item.Quantity}},
			)
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			if res.MatchedCount == 0 {
				log.Println("[ORDER] [ERROR] stock decrement skipped, missing product:", item.Product.Hex())
			}
		}

		var updated models.Order
		err = db.Collection("orders").FindOneAndUpdate(
			ctx,
			bson.M{"_id": orderID},
			bson.M{"$set": bson.M{"orderStatus": req.OrderStatus}},
			findOneAndUpdateReturnAfter(),
		).Decode(&updated)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] order %s moved to %s", route, orderID.Hex(), req.OrderStatus)
		c.JSON(http.StatusOK, gin.H{"success": true, "order": updated})
	}
}

// AdminDeleteOneOrder removes the order. Stock is not restored.
func AdminDeleteOneOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/order/:id"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").DeleteOne(ctx, bson.M{"_id": orderID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "please check order id")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "order deleted"})
	}
}
