package model

import "time"

// Comment is free text attached to a task.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	TaskID    uint      `gorm:"not null;index" json:"taskId"`
	Task      *Task     `gorm:"constraint:OnDelete:CASCADE" json:"task,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
