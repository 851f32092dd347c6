package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/melodybeans/coffeestore/db"
	"github.com/melodybeans/coffeestore/internal/models"
	"github.com/melodybeans/coffeestore/internal/types"
	"gorm.io/gorm"
)

type CreateReviewRequest struct {
	// TODO: take the acting user from the bearer token instead of the body
	// once the clients stop sending user_id; the auth layer already resolves
	// it. Kept as-is for compatibility with the current frontend.
	UserID    uint   `json:"user_id" binding:"required"`
	ProductID *uint  `json:"product_id"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"required,min=1,max=500"`
}

func CreateReview(ctx *gin.Context) {
	var req CreateReviewRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var product models.Product

	if req.ProductID != nil {
		if err := db.DB.First(&product, *req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}
	}

	review := models.Review{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := db.DB.Create(&review).Error; err != nil {
		log.Printf("Failed to create review: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	review.User = user
	if req.ProductID != nil {
		review.Product = &product
	}

	ctx.JSON(http.StatusCreated, types.NewReviewResponse(review))
}

func ListReviews(ctx *gin.Context) {
	skip, limit := pagination(ctx)

	query := db.DB.Preload("User").Preload("Product")

	if productID := ctx.Query("product_id"); productID != "" {
		query = query.Where("product_id = ?", productID)
	}

	if userID := ctx.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var reviews []models.Review

	if err := query.Offset(skip).Limit(limit).Find(&reviews).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
		return
	}

	response := []types.ReviewResponse{}

	for _, review := range reviews {
		response = append(response, types.NewReviewResponse(review))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetReview(ctx *gin.Context) {
	var review models.Review

	err := db.DB.Preload("User").Preload("Product").
		Where("id = ?", ctx.Param("id")).
		First(&review).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve review"})
		}
		return
	}

	ctx.JSON(http.StatusOK, types.NewReviewResponse(review))
}

func DeleteReview(ctx *gin.Context) {
	var review models.Review

	if err := db.DB.Where("id = ?", ctx.Param("id")).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve review"})
		}
		return
	}

	if err := db.DB.Delete(&review).Error; err != nil {
		log.Printf("Failed to delete review: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
