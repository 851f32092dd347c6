package models

type OrderItem struct {
	BaseModel

	OrderID   uint `gorm:"not null;index"`
	ProductID uint `gorm:"not null;index"`
	Quantity  int  `gorm:"not null"`
	// PriceAtOrder is the product price captured when the order was placed.
	// Later product price changes must not touch it.
	PriceAtOrder float64 `gorm:"not null"`

	// Relationships
	Order   Order   `gorm:"foreignKey:OrderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Product Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
