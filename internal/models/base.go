package models

import "time"

// BaseModel is the shared column set for all tables. Rows are hard-deleted,
// so there is no soft-delete column here.
type BaseModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
