package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/imagestore"
	"storefront/internal/mailer"
	"storefront/internal/middleware"
	"storefront/internal/models"
)

type signupRequest struct {
	Name     string `form:"name" binding:"required,max=40"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
}

type updateUserRequest struct {
	Name  string `form:"name" binding:"required,max=40"`
	Email string `form:"email" binding:"required,email"`
}

func Signup(db *mongo.Database, images imagestore.Store, jwtSecret string, jwtTTL, cookieTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /signup"
		defer handlePanic(c, route)

		var req signupRequest
		if err := c.ShouldBind(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		file, err := c.FormFile("photo")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "photo is required for signup")
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if count > 0 {
			respondWithError(c, http.StatusConflict, route, "email already registered")
			return
		}

		src, err := file.Open()
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "could not read photo")
			return
		}
		defer src.Close()

		photo, err := images.Upload(ctx, src, "users")
		if err != nil {
			log.Println("[AUTH] [ERROR] signup photo upload failed:", err)
			respondWithError(c, http.StatusBadGateway, route, "photo upload failed")
			return
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "password hash failed")
			return
		}

		user := models.User{
			Name:         strings.TrimSpace(req.Name),
			Email:        email,
			PasswordHash: hash,
			Role:         models.RoleUser,
			Photo:        models.Photo{ID: photo.ID, SecureURL: photo.SecureURL},
			CreatedAt:    time.Now(),
		}

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			user.ID = id
		}

		log.Println("[AUTH] [INFO] user registered:", email)
		sendSessionToken(c, user, jwtSecret, jwtTTL, cookieTTL, http.StatusCreated)
	}
}

func Login(db *mongo.Database, jwtSecret string, jwtTTL, cookieTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /login"
		defer handlePanic(c, route)

		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusUnauthorized, route, "you are not registered")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if !verifyPassword(req.Password, user.PasswordHash) {
			respondWithError(c, http.StatusUnauthorized, route, "invalid credentials")
			return
		}

		log.Println("[AUTH] [INFO] login succeeded:", email)
		sendSessionToken(c, user, jwtSecret, jwtTTL, cookieTTL, http.StatusOK)
	}
}

func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie("token", "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "logout successfully"})
	}
}

// ForgotPassword persists a hashed reset token and mails the raw value. When
// the mail cannot be delivered the token fields are rolled back so no
// redeemable token is left behind.
func ForgotPassword(db *mongo.Database, mail mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /forgotPassword"
		defer handlePanic(c, route)

		var req forgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
			respondWithError(c, http.StatusNotFound, route, "you are not registered")
			return
		}

		raw, hash, expiry, err := newResetToken()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "token generation failed")
			return
		}

		if _, err := db.Collection("users").UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
			"forgotPasswordToken":  hash,
			"forgotPasswordExpiry": expiry,
		}}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		resetURL := fmt.Sprintf("%s://%s/api/v1/password/reset/%s", scheme, c.Request.Host, raw)
		message := fmt.Sprintf("Copy and paste this link in your browser to reset your password:\n\n%s", resetURL)

		if err := mail.Send(email, "Storefront - Password Reset", message); err != nil {
			log.Println("[AUTH] [ERROR] reset mail send failed:", err)
			// Roll back so no redeemable token exists without a delivered mail.
			_, _ = db.Collection("users").UpdateByID(ctx, user.ID, bson.M{"$unset": bson.M{
				"forgotPasswordToken":  "",
				"forgotPasswordExpiry": "",
			}})
			respondWithError(c, http.StatusBadGateway, route, "reset email could not be sent")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "email sent successfully"})
	}
}

// ResetPassword redeems a raw reset token. The token is single-use: the
// stored hash and expiry are cleared in the same update that sets the new
// password.
func ResetPassword(db *mongo.Database, jwtSecret string, jwtTTL, cookieTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /password/reset/:token"
		defer handlePanic(c, route)

		var req resetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if req.Password != req.ConfirmPassword {
			respondWithError(c, http.StatusBadRequest, route, "password and confirm password do not match")
			return
		}

		hash := hashResetToken(c.Param("token"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{
			"forgotPasswordToken":  hash,
			"forgotPasswordExpiry": bson.M{"$gt": time.Now()},
		}).Decode(&user)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "token is invalid or expired")
			return
		}

		passwordHash, err := hashPassword(req.Password)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "password hash failed")
			return
		}

		if _, err := db.Collection("users").UpdateByID(ctx, user.ID, bson.M{
			"$set":   bson.M{"passwordHash": passwordHash},
			"$unset": bson.M{"forgotPasswordToken": "", "forgotPasswordExpiry": ""},
		}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		user.PasswordHash = passwordHash
		log.Println("[AUTH] [INFO] password reset for:", user.Email)
		sendSessionToken(c, user, jwtSecret, jwtTTL, cookieTTL, http.StatusOK)
	}
}

func GetLoggedInUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.UserFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, "GET /userdashboard", "login first to access this page")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

func ChangePassword(db *mongo.Database, jwtSecret string, jwtTTL, cookieTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /password/update"
		defer handlePanic(c, route)

		user, ok := middleware.UserFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "login first to access this page")
			return
		}

		var req changePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if !verifyPassword(req.OldPassword, user.PasswordHash) {
			respondWithError(c, http.StatusBadRequest, route, "old password is incorrect")
			return
		}

		passwordHash, err := hashPassword(req.Password)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "password hash failed")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("users").UpdateByID(ctx, user.ID, bson.M{
			"$set": bson.M{"passwordHash": passwordHash},
		}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		user.PasswordHash = passwordHash
		sendSessionToken(c, user, jwtSecret, jwtTTL, cookieTTL, http.StatusOK)
	}
}

// UpdateUserDetails updates name and email; an optional multipart photo
// replaces the stored one (old image is destroyed at the host first).
func UpdateUserDetails(db *mongo.Database, images imagestore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /userdashboard/update"
		defer handlePanic(c, route)

		user, ok := middleware.UserFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "login first to access this page")
			return
		}

		var req updateUserRequest
		if err := c.ShouldBind(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		update := bson.M{
			"name":  strings.TrimSpace(req.Name),
			"email": strings.ToLower(strings.TrimSpace(req.Email)),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		if file, err := c.FormFile("photo"); err == nil {
			if err := images.Destroy(ctx, user.Photo.ID); err != nil {
				log.Println("[USER] [ERROR] old photo destroy failed:", err)
				respondWithError(c, http.StatusBadGateway, route, "photo replace failed")
				return
			}

			src, err := file.Open()
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "could not read photo")
				return
			}
			defer src.Close()

			photo, err := images.Upload(ctx, src, "users")
			if err != nil {
				log.Println("[USER] [ERROR] photo upload failed:", err)
				respondWithError(c, http.StatusBadGateway, route, "photo upload failed")
				return
			}
			update["photo"] = models.Photo{ID: photo.ID, SecureURL: photo.SecureURL}
		}

		var updated models.User
		err := db.Collection("users").FindOneAndUpdate(
			ctx,
			bson.M{"_id": user.ID},
			bson.M{"$set": update},
			findOneAndUpdateReturnAfter(),
		).Decode(&updated)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "user": updated})
	}
}
