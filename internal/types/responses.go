package types

import (
	"time"

	"github.com/melodybeans/coffeestore/internal/models"
)

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type ProductResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	IsAvailable bool    `json:"is_available"`
}

type ReviewResponse struct {
	ID        uint             `json:"id"`
	UserID    uint             `json:"user_id"`
	ProductID *uint            `json:"product_id,omitempty"`
	Rating    int              `json:"rating"`
	Comment   string           `json:"comment"`
	CreatedAt time.Time        `json:"created_at"`
	User      *UserResponse    `json:"user,omitempty"`
	Product   *ProductResponse `json:"product,omitempty"`
}

type OrderItemResponse struct {
	ID           uint             `json:"id"`
	OrderID      uint             `json:"order_id"`
	ProductID    uint             `json:"product_id"`
	Quantity     int              `json:"quantity"`
	PriceAtOrder float64          `json:"price_at_order"`
	Product      *ProductResponse `json:"product,omitempty"`
}

type OrderResponse struct {
	ID              uint                `json:"id"`
	UserID          uint                `json:"user_id"`
	TotalAmount     float64             `json:"total_amount"`
	Status          string              `json:"status"`
	ShippingAddress string              `json:"shipping_address"`
	PaymentMethod   string              `json:"payment_method"`
	RecipientName   string              `json:"recipient_name"`
	RecipientPhone  string              `json:"recipient_phone"`
	CreatedAt       time.Time           `json:"created_at"`
	User            *UserResponse       `json:"user,omitempty"`
	Items           []OrderItemResponse `json:"items"`
}

func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		IsAdmin:  user.IsAdmin,
	}
}

func NewProductResponse(product models.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		IsAvailable: product.IsAvailable,
	}
}

func NewReviewResponse(review models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:        review.ID,
		UserID:    review.UserID,
		ProductID: review.ProductID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}

	if review.User.ID != 0 {
		user := NewUserResponse(review.User)
		resp.User = &user
	}

	if review.Product != nil && review.Product.ID != 0 {
		product := NewProductResponse(*review.Product)
		resp.Product = &product
	}

	return resp
}

func NewOrderResponse(order models.Order) OrderResponse {
	resp := OrderResponse{
		ID:              order.ID,
		UserID:          order.UserID,
		TotalAmount:     order.TotalAmount,
		Status:          string(order.Status),
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		RecipientName:   order.RecipientName,
		RecipientPhone:  order.RecipientPhone,
		CreatedAt:       order.CreatedAt,
		Items:           []OrderItemResponse{},
	}

	if order.User.ID != 0 {
		user := NewUserResponse(order.User)
		resp.User = &user
	}

	for _, item := range order.Items {
		itemResp := OrderItemResponse{
			ID:           item.ID,
			OrderID:      item.OrderID,
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			PriceAtOrder: item.PriceAtOrder,
		}

		if item.Product.ID != 0 {
			product := NewProductResponse(item.Product)
			itemResp.Product = &product
		}

		resp.Items = append(resp.Items, itemResp)
	}

	return resp
}
