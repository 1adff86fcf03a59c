package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
)

type ShippingInfo struct {
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	PhoneNo    string `bson:"phoneNo" json:"phoneNo"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	State      string `bson:"state" json:"state"`
	Country    string `bson:"country" json:"country"`
}

// OrderItem is one product+quantity line within an order. Name, image and
// price are denormalized at checkout time.
type OrderItem struct {
	Name     string             `bson:"name" json:"name"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Image    string             `bson:"image" json:"image"`
	Price    float64            `bson:"price" json:"price"`
	Product  primitive.ObjectID `bson:"product" json:"product"`
}

type PaymentInfo struct {
	ID string `bson:"id" json:"id"`
}

type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShippingInfo   ShippingInfo       `bson:"shippingInfo" json:"shippingInfo"`
	OrderItems     []OrderItem        `bson:"orderItems" json:"orderItems"`
	PaymentInfo    PaymentInfo        `bson:"paymentInfo" json:"paymentInfo"`
	TaxAmount      float64            `bson:"taxAmount" json:"taxAmount"`
	ShippingAmount float64            `bson:"shippingAmount" json:"shippingAmount"`
	TotalAmount    float64            `bson:"totalAmount" json:"totalAmount"`
	OrderStatus    string             `bson:"orderStatus" json:"orderStatus"`
	User           primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
