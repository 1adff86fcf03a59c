package main

import (
	"log"

	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
	stripeclient "github.com/stripe/stripe-go/v79/client"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/imagestore"
	"storefront/internal/mailer"
	"storefront/internal/middleware"
	"storefront/internal/models"
)

func main() {
	cfg := config.Load()

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(cfg.DBName)
	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}

	images, err := imagestore.NewCloudinary(cfg.CloudinaryName, cfg.CloudinaryKey, cfg.CloudinarySecret)
	if err != nil {
		log.Fatal("cloudinary init failed:", err)
	}

	mail := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	stripeClient := &stripeclient.API{}
	stripeClient.Init(cfg.StripeSecretKey, nil)

	razorpayClient := razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	r := gin.Default()

	loggedIn := middleware.RequireLogin(db, cfg.JWTSecret)
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	managerOnly := middleware.RequireRole(models.RoleManager)

	api := r.Group("/api/v1")
	{
		api.POST("/signup", handlers.Signup(db, images, cfg.JWTSecret, cfg.JWTExpiry, cfg.CookieExpiry))
		api.POST("/login", handlers.Login(db, cfg.JWTSecret, cfg.JWTExpiry, cfg.CookieExpiry))
		api.GET("/logout", handlers.Logout())
		api.POST("/forgotPassword", handlers.ForgotPassword(db, mail))
		api.POST("/password/reset/:token", handlers.ResetPassword(db, cfg.JWTSecret, cfg.JWTExpiry, cfg.CookieExpiry))
		api.GET("/userdashboard", loggedIn, handlers.GetLoggedInUser(db))
		api.POST("/password/update", loggedIn, handlers.ChangePassword(db, cfg.JWTSecret, cfg.JWTExpiry, cfg.CookieExpiry))
		api.POST("/userdashboard/update", loggedIn, handlers.UpdateUserDetails(db, images))

		api.GET("/products", handlers.GetAllProducts(db))
		api.GET("/product/:id", handlers.GetOneProduct(db))
		api.PUT("/review", loggedIn, handlers.AddReview(db))
		api.DELETE("/review", loggedIn, handlers.DeleteReview(db))
		api.GET("/reviews", loggedIn, handlers.GetProductReviews(db))

		api.POST("/order/create", loggedIn, handlers.CreateOrder(db))
		api.GET("/order/:id", loggedIn, handlers.GetOneOrder(db))
		api.GET("/myOrder", loggedIn, handlers.GetLoggedInOrders(db))

		api.GET("/stripekey", loggedIn, handlers.SendStripeKey(cfg.StripeAPIKey))
		api.GET("/razorpaykey", loggedIn, handlers.SendRazorpayKey(cfg.RazorpayKeyID))
		api.POST("/capturestripe", loggedIn, handlers.CaptureStripePayment(stripeClient))
		api.POST("/capturerazorpay", loggedIn, handlers.CaptureRazorpayPayment(razorpayClient))

		admin := api.Group("/admin", loggedIn, adminOnly)
		{
			admin.GET("/users", handlers.AdminAllUsers(db))
			admin.GET("/user/:id", handlers.AdminGetOneUser(db))
			admin.PUT("/user/:id", handlers.AdminUpdateOneUser(db))
			admin.DELETE("/user/:id", handlers.AdminDeleteOneUser(db, images))

			admin.POST("/product/add", handlers.AddProduct(db, images))
			admin.GET("/products", handlers.AdminGetAllProducts(db))
			admin.PUT("/product/:id", handlers.AdminUpdateOneProduct(db, images))
			admin.DELETE("/product/:id", handlers.AdminDeleteOneProduct(db, images))

			admin.GET("/orders", handlers.AdminGetAllOrders(db))
			admin.PUT("/order/:id", handlers.AdminUpdateOrder(db))
			admin.DELETE("/order/:id", handlers.AdminDeleteOneOrder(db))
		}

		manager := api.Group("/manager", loggedIn, managerOnly)
		{
			manager.GET("/users", handlers.ManagerAllUsers(db))
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
