package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
	stripe "github.com/stripe/stripe-go/v79"
	stripeclient "github.com/stripe/stripe-go/v79/client"
)

type capturePaymentRequest struct {
	// Amount in the currency's smallest unit (paise/cents).
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// SendStripeKey hands the publishable key to the frontend.
func SendStripeKey(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "stripekey": apiKey})
	}
}

func SendRazorpayKey(keyID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "razorpaykey": keyID})
	}
}

// CaptureStripePayment creates a payment intent and returns its client
// secret so the frontend can confirm the payment.
func CaptureStripePayment(sc *stripeclient.API) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /capturestripe"
		defer handlePanic(c, route)

		var req capturePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		params := &stripe.PaymentIntentParams{
			Amount:   stripe.Int64(req.Amount),
			Currency: stripe.String(string(stripe.CurrencyINR)),
			AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
				Enabled: stripe.Bool(true),
			},
		}

		intent, err := sc.PaymentIntents.New(params)
		if err != nil {
			log.Println("[PAYMENT] [ERROR] stripe payment intent failed:", err)
			respondWithError(c, http.StatusBadGateway, route, "payment could not be captured")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"amount":       req.Amount,
			"clientSecret": intent.ClientSecret,
		})
	}
}

// CaptureRazorpayPayment creates a Razorpay order for the given amount.
func CaptureRazorpayPayment(client *razorpay.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /capturerazorpay"
		defer handlePanic(c, route)

		var req capturePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		order, err := client.Order.Create(map[string]interface{}{
			"amount":   req.Amount,
			"currency": "INR",
		}, nil)
		if err != nil {
			log.Println("[PAYMENT] [ERROR] razorpay order failed:", err)
			respondWithError(c, http.StatusBadGateway, route, "payment could not be captured")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"id":       order["id"],
			"amount":   order["amount"],
			"currency": order["currency"],
		})
	}
}
