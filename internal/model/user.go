package model

import (
	"time"
)

type User struct {
	ID           uint64     `gorm:"primaryKey"`
	Username     string     `gorm:"type:varchar(50);uniqueIndex:idx_username;not null"`
	StartDate    time.Time  `gorm:"type:date;not null"`
	EndDate      *time.Time `gorm:"type:date"` // nil = still active
	BusinessUnit string     `gorm:"type:varchar(30);not null;index:idx_business_unit"`
	Manager      string     `gorm:"type:varchar(50);not null"`
	LastUpdate   time.Time  `gorm:"type:date;not null"`
	IsExternal   bool       `gorm:"type:tinyint(1);not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Assignments []Assignment `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}
