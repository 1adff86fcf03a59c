package handlers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/models"
)

// resetTokenTTL bounds how long a password-reset token stays redeemable.
const resetTokenTTL = 20 * time.Minute

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func issueSessionToken(userID primitive.ObjectID, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID.Hex(),
		"exp": time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// newResetToken returns the raw token (mailed to the user) together with the
// hash that gets persisted and the expiry. Only the hash ever touches the
// database.
func newResetToken() (raw string, hash string, expiry time.Time, err error) {
	buf := make([]byte, 20)
	if _, err = rand.Read(buf); err != nil {
		return "", "", time.Time{}, err
	}

	raw = hex.EncodeToString(buf)
	return raw, hashResetToken(raw), time.Now().Add(resetTokenTTL), nil
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// sendSessionToken issues a session token and delivers it both as an
// http-only cookie and in the JSON body.
func sendSessionToken(c *gin.Context, user models.User, secret string, ttl, cookieTTL time.Duration, status int) {
	token, err := issueSessionToken(user.ID, secret, ttl)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, c.Request.Method+" "+c.FullPath(), "token generation failed")
		return
	}

	c.SetCookie("token", token, int(cookieTTL.Seconds()), "/", "", false, true)
	c.JSON(status, gin.H{
		"success": true,
		"token":   token,
		"user":    user,
	})
}
