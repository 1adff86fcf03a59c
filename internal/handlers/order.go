package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/middleware"
	"storefront/internal/models"
)

type shippingInfoRequest struct {
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PhoneNo    string `json:"phoneNo" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	State      string `json:"state" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

type orderItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity int     `json:"quantity" binding:"required,gt=0"`
	Image    string  `json:"image"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Product  string  `json:"product" binding:"required"`
}

type createOrderRequest struct {
	ShippingInfo   shippingInfoRequest `json:"shippingInfo" binding:"required"`
	OrderItems     []orderItemRequest  `json:"orderItems" binding:"required,min=1,dive"`
	PaymentInfo    models.PaymentInfo  `json:"paymentInfo" binding:"required"`
	TaxAmount      float64             `json:"taxAmount"`
	ShippingAmount float64             `json:"shippingAmount"`
	TotalAmount    float64             `json:"totalAmount" binding:"required,gt=0"`
}

// CreateOrder persists a checkout in the initial processing state. Stock is
// not checked here; it is decremented when an admin advances the order.
func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /order/create"
		defer handlePanic(c, route)

		user, ok := middleware.UserFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "login first to access this page")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		items := make([]models.OrderItem, 0, len(req.OrderItems))
		for _, item := range req.OrderItems {
			productID, err := primitive.ObjectIDFromHex(item.Product)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid product id in order items")
				return
			}
			items = append(items, models.OrderItem{
				Name:     item.Name,
				Quantity: item.Quantity,
				Image:    item.Image,
				Price:    item.Price,
				Product:  productID,
			})
		}

		order := models.Order{
			ShippingInfo:   models.ShippingInfo(req.ShippingInfo),
			OrderItems:     items,
			PaymentInfo:    req.PaymentInfo,
			TaxAmount:      req.TaxAmount,
			ShippingAmount: req.ShippingAmount,
			TotalAmount:    req.TotalAmount,
			OrderStatus:    models.OrderStatusProcessing,
			User:           user.ID,
			CreatedAt:      time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = id
		}

		log.Println("[ORDER] [INFO] order created for user:", user.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
	}
}

// GetOneOrder returns an order with the purchaser's name and email joined in.
func GetOneOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /order/:id"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
			respondWithError(c, http.StatusNotFound, route, "please check order id")
			return
		}

		var purchaser models.User
		userInfo := gin.H{}
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": order.User}).Decode(&purchaser); err == nil {
			userInfo = gin.H{"name": purchaser.Name, "email": purchaser.Email}
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order, "user": userInfo})
	}
}

func GetLoggedInOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /myOrder"
		defer handlePanic(c, route)

		user, ok := middleware.UserFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "login first to access this page")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(ctx, bson.M{"user": user.ID})
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
