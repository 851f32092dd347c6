package models

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// statusTransitions fixes the order lifecycle: completed and cancelled are
// terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

func (s OrderStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	BaseModel

	UserID          uint        `gorm:"not null;index"`
	TotalAmount     float64     `gorm:"not null"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;default:pending;index"`
	ShippingAddress string      `gorm:"type:text;not null"`
	PaymentMethod   string      `gorm:"not null"`
	RecipientName   string      `gorm:"not null"`
	RecipientPhone  string      `gorm:"not null"`

	// Relationships
	User  User        `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
