package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/imagestore"
	"storefront/internal/middleware"
	"storefront/internal/models"
)

// multipartProductInput carries the parsed multipart form of a product
// create/update. Set flags distinguish "absent" from zero values on update.
type multipartProductInput struct {
	Name           string
	NameSet        bool
	Price          float64
	PriceSet       bool
	Description    string
	DescriptionSet bool
	Category       string
	CategorySet    bool
	Stock          int
	StockSet       bool
	Brand          string
	BrandSet       bool
}

func parseMultipartProductInput(c *gin.Context) (multipartProductInput, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		return multipartProductInput{}, err
	}

	input := multipartProductInput{}

	if value, ok := c.GetPostForm("name"); ok {
		input.Name = strings.TrimSpace(value)
		input.NameSet = true
	}

	if value, ok := c.GetPostForm("description"); ok {
		input.Description = strings.TrimSpace(value)
		input.DescriptionSet = true
	}

	if value, ok := c.GetPostForm("category"); ok {
		input.Category = strings.TrimSpace(value)
		input.CategorySet = true
	}

	if value, ok := c.GetPostForm("brand"); ok {
		input.Brand = strings.TrimSpace(value)
		input.BrandSet = true
	}

	if value, ok := c.GetPostForm("price"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return multipartProductInput{}, err
		}
		input.Price = parsed
		input.PriceSet = true
	}

	if value, ok := c.GetPostForm("stock"); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return multipartProductInput{}, err
		}
		input.Stock = parsed
		input.StockSet = true
	}

	return input, nil
}

func (in multipartProductInput) validateForCreate() string {
	switch {
	case !in.NameSet || in.Name == "":
		return "please provide product name"
	case len(in.Name) > 120:
		return "product name should not be more than 120 chars"
	case !in.PriceSet || in.Price <= 0:
		return "please provide product price"
	case !in.DescriptionSet || in.Description == "":
		return "please provide product description"
	case !in.CategorySet || !models.IsValidCategory(in.Category):
		return "please select category only from - shortsleeves, longsleeves, sweatshirt, hoodies"
	case !in.StockSet || in.Stock < 0:
		return "please provide stock in number"
	case !in.BrandSet || in.Brand == "":
		return "please add brand for clothing"
	}
	return ""
}

func uploadProductPhotos(ctx context.Context, c *gin.Context, images imagestore.Store) ([]models.Photo, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	files := form.File["photos"]
	photos := make([]models.Photo, 0, len(files))
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return nil, err
		}

		uploaded, err := images.Upload(ctx, src, "products")
		src.Close()
		if err != nil {
			return nil, err
		}

		photos = append(photos, models.Photo{ID: uploaded.ID, SecureURL: uploaded.SecureURL})
	}

	return photos, nil
}

func AddProduct(db *mongo.Database, images imagestore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/product/add"
		defer handlePanic(c, route)

		admin, ok := middleware.UserFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "login first to access this page")
			return
		}

		input, err := parseMultipartProductInput(c)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		if message := input.validateForCreate(); message != "" {
			respondWithError(c, http.StatusBadRequest, route, message)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		photos, err := uploadProductPhotos(ctx, c, images)
		if err != nil {
			log.Println("[PRODUCT] [ERROR] photo upload failed:", err)
			respondWithError(c, http.StatusBadGateway, route, "photo upload failed")
			return
		}
		if len(photos) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "images are required")
			return
		}

		product := models.Product{
			Name:        input.Name,
			Price:       input.Price,
			Description: input.Description,
			Photos:      photos,
			Category:    input.Category,
			Stock:       input.Stock,
			Brand:       input.Brand,
			Reviews:     []models.Review{},
			User:        admin.ID,
			CreatedAt:   time.Now(),
		}

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			product.ID = id
		}

		log.Println("[PRODUCT] [INFO] product created:", product.Name)
		c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
	}
}

func AdminGetAllProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/products"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

// AdminUpdateOneProduct applies the fields present in the multipart form.
// When new photos are attached, every stored photo is destroyed at the host
// before the replacements are uploaded.
func AdminUpdateOneProduct(db *mongo.Database, images imagestore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/product/:id"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		input, err := parseMultipartProductInput(c)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			respondWithError(c, http.StatusNotFound, route, "no product found with this id")
			return
		}

		update := bson.M{}
		if input.NameSet {
			if input.Name == "" || len(input.Name) > 120 {
				respondWithError(c, http.StatusBadRequest, route, "product name should be 1 to 120 chars")
				return
			}
			update["name"] = input.Name
		}
		if input.PriceSet {
			update["price"] = input.Price
		}
		if input.DescriptionSet {
			update["description"] = input.Description
		}
		if input.CategorySet {
			if !models.IsValidCategory(input.Category) {
				respondWithError(c, http.StatusBadRequest, route, "please select category only from - shortsleeves, longsleeves, sweatshirt, hoodies")
				return
			}
			update["category"] = input.Category
		}
		if input.StockSet {
			update["stock"] = input.Stock
		}
		if input.BrandSet {
			update["brand"] = input.Brand
		}

		if form, formErr := c.MultipartForm(); formErr == nil && len(form.File["photos"]) > 0 {
			for _, photo := range product.Photos {
				if err := images.Destroy(ctx, photo.ID); err != nil {
					log.Println("[PRODUCT] [ERROR] old photo destroy failed:", err)
					respondWithError(c, http.StatusBadGateway, route, "photo replace failed")
					return
				}
			}

			photos, err := uploadProductPhotos(ctx, c, images)
			if err != nil {
				log.Println("[PRODUCT] [ERROR] photo upload failed:", err)
				respondWithError(c, http.StatusBadGateway, route, "photo upload failed")
				return
			}
			update["photos"] = photos
		}

		if len(update) == 0 {
			c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
			return
		}

		var updated models.Product
		err = db.Collection("products").FindOneAndUpdate(
			ctx,
			bson.M{"_id": productID},
			bson.M{"$set": update},
			findOneAndUpdateReturnAfter(),
		).Decode(&updated)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "product": updated})
	}
}

// AdminDeleteOneProduct removes the product and cascades deletion of every
// hosted photo.
func AdminDeleteOneProduct(db *mongo.Database, images imagestore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/product/:id"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			respondWithError(c, http.StatusNotFound, route, "no product found with this id")
			return
		}

		for _, photo := range product.Photos {
			if err := images.Destroy(ctx, photo.ID); err != nil {
				log.Println("[PRODUCT] [ERROR] photo destroy failed:", err)
				respondWithError(c, http.StatusBadGateway, route, "photo deletion failed")
				return
			}
		}

		if _, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": productID}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "product deleted"})
	}
}
