package models

import "time"

// Goal represents a savings goal owned by a user.
type Goal struct {
	Base
	UserID        uint       `gorm:"not null;index" json:"userId"`
	Title         string     `gorm:"size:100;not null" json:"title"`
	TargetAmount  float64    `gorm:"not null" json:"targetAmount"`
	CurrentAmount float64    `gorm:"not null;default:0" json:"currentAmount"`
	Deadline      *time.Time `json:"deadline,omitempty"`
}
