package models

type Product struct {
	BaseModel

	Name        string `gorm:"uniqueIndex;not null"`
	Description string
	Price       float64 `gorm:"not null"`
	ImageURL    string
	IsAvailable bool `gorm:"default:true"`

	// Relationships
	Reviews    []Review    `gorm:"foreignKey:ProductID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	OrderItems []OrderItem `gorm:"foreignKey:ProductID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
