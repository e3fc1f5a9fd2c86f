package models

import (
	"time"
)

const StatusPending = "pending"

type Task struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	OwnerID     uint      `json:"owner_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Status      string    `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt   time.Time `json:"created_at"`
}
