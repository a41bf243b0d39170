package model

import "time"

// Assignment links a user to a course. A user may hold several assignments,
// even for the same course. CompletionDate, when set, is >= AssignmentDate.
type Assignment struct {
	ID             uint64     `gorm:"primaryKey"`
	Username       string     `gorm:"type:varchar(50);not null;index:idx_assignment_user"`
	CourseID       uint64     `gorm:"not null;index:idx_assignment_course"`
	CompletionDate *time.Time `gorm:"type:date"` // nil = not yet completed
	AssignmentDate time.Time  `gorm:"type:date;not null"`
	CreatedAt      time.Time
}

func (Assignment) TableName() string {
	return "assignments"
}
