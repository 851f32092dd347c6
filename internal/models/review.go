package models

type Review struct {
	BaseModel

	UserID    uint   `gorm:"not null;index"`
	ProductID *uint  `gorm:"index"` // nil for reviews of the shop rather than a product
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"type:text"`

	// Relationships
	User    User     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
