package model

import "time"

// Course is immutable reference data; nothing in the service mutates it
// after seeding.
type Course struct {
	ID           uint64    `gorm:"primaryKey"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Link         string    `gorm:"type:varchar(255);not null"`
	CreationDate time.Time `gorm:"type:date;not null"`
	CreatedAt    time.Time

	Assignments []Assignment `gorm:"foreignKey:CourseID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Course) TableName() string {
	return "courses"
}
