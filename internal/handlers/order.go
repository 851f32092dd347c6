package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/melodybeans/coffeestore/db"
	"github.com/melodybeans/coffeestore/internal/models"
	"github.com/melodybeans/coffeestore/internal/types"
	"gorm.io/gorm"
)

// orderPlacingUserID is the account every order is attributed to.
// TODO: take the acting user from the bearer token once order placement is
// wired to the auth layer; the middleware already resolves the subject.
const orderPlacingUserID uint = 1

type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1"`
	TotalAmount     float64            `json:"total_amount" binding:"required,gt=0"`
	ShippingAddress string             `json:"shipping_address" binding:"required"`
	PaymentMethod   string             `json:"payment_method" binding:"required"`
	RecipientName   string             `json:"recipient_name" binding:"required"`
	RecipientPhone  string             `json:"recipient_phone" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// statusError carries an HTTP status out of a transaction closure so a
// validation failure rolls back and still maps to the right response.
type statusError struct {
	Code    int
	Message string
}

func (e *statusError) Error() string {
	return e.Message
}

func newStatusError(code int, format string, args ...interface{}) *statusError {
	return &statusError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CreateOrder validates the whole item list and persists the order header
// plus its items inside one transaction. The per-item price snapshot is read
// in the same transaction that writes the item row, so a concurrent price
// update either fully precedes or fully follows this order's view.
func CreateOrder(ctx *gin.Context) {
	var req CreateOrderRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var order models.Order

	txErr := db.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User

		if err := tx.First(&user, orderPlacingUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newStatusError(http.StatusNotFound, "User %d not found. Make sure the user is registered.", orderPlacingUserID)
			}
			return err
		}

		// Validate every requested line before writing anything; one bad
		// item aborts the whole order.
		products := make(map[uint]models.Product, len(req.Items))

		for _, item := range req.Items {
			if _, ok := products[item.ProductID]; !ok {
				var product models.Product

				if err := tx.First(&product, item.ProductID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return newStatusError(http.StatusNotFound, "Product %d not found", item.ProductID)
					}
					return err
				}

				products[item.ProductID] = product
			}

			if item.Quantity <= 0 {
				return newStatusError(http.StatusBadRequest, "Quantity for product %d must be greater than zero", item.ProductID)
			}
		}

		order = models.Order{
			UserID:          user.ID,
			TotalAmount:     req.TotalAmount,
			Status:          models.OrderStatusPending,
			ShippingAddress: req.ShippingAddress,
			PaymentMethod:   req.PaymentMethod,
			RecipientName:   req.RecipientName,
			RecipientPhone:  req.RecipientPhone,
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range req.Items {
			orderItem := models.OrderItem{
				OrderID:      order.ID,
				ProductID:    item.ProductID,
				Quantity:     item.Quantity,
				PriceAtOrder: products[item.ProductID].Price,
			}

			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if txErr != nil {
		var se *statusError
		if errors.As(txErr, &se) {
			ctx.JSON(se.Code, gin.H{"error": se.Message})
			return
		}
		log.Printf("Failed to create order: %v", txErr)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	full, err := loadOrder(order.ID)

	if err != nil {
		log.Printf("Failed to load created order %d: %v", order.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}

	BroadcastOrderEvent("order_created", full.ID, string(full.Status))

	ctx.JSON(http.StatusCreated, types.NewOrderResponse(full))
}

func ListOrders(ctx *gin.Context) {
	skip, limit := pagination(ctx)

	query := db.DB.Preload("User").Preload("Items.Product")

	if userID := ctx.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order

	if err := query.Offset(skip).Limit(limit).Find(&orders).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}

	response := []types.OrderResponse{}

	for _, order := range orders {
		response = append(response, types.NewOrderResponse(order))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetOrder(ctx *gin.Context) {
	var order models.Order

	err := db.DB.Preload("User").Preload("Items.Product").
		Where("id = ?", ctx.Param("id")).
		First(&order).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		}
		return
	}

	ctx.JSON(http.StatusOK, types.NewOrderResponse(order))
}

func UpdateOrderStatus(ctx *gin.Context) {
	var req UpdateOrderStatusRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	next := models.OrderStatus(req.Status)

	// Reject unknown values before touching the row.
	if !next.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status. Valid statuses are: pending, processing, completed, cancelled"})
		return
	}

	var order models.Order

	if err := db.DB.Where("id = ?", ctx.Param("id")).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		}
		return
	}

	if !order.Status.CanTransitionTo(next) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cannot change status from %s to %s", order.Status, next)})
		return
	}

	if err := db.DB.Model(&order).Update("status", next).Error; err != nil {
		log.Printf("Failed to update order status: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	full, err := loadOrder(order.ID)

	if err != nil {
		log.Printf("Failed to load updated order %d: %v", order.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}

	BroadcastOrderEvent("order_status_changed", full.ID, string(full.Status))

	ctx.JSON(http.StatusOK, types.NewOrderResponse(full))
}

// DeleteOrder removes the order and its items in one transaction so no
// orphaned items survive a partial failure.
func DeleteOrder(ctx *gin.Context) {
	var order models.Order

	if err := db.DB.Where("id = ?", ctx.Param("id")).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		}
		return
	}

	txErr := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})

	if txErr != nil {
		log.Printf("Failed to delete order %d: %v", order.ID, txErr)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func loadOrder(id uint) (models.Order, error) {
	var order models.Order

	err := db.DB.Preload("User").Preload("Items.Product").First(&order, id).Error

	return order, err
}
