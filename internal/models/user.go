package models

import "time"

// User represents the user model in the database.
// Password-reset fields are only set between a reset request and its
// completion; they are never serialized to clients.
type User struct {
	Base
	Email                string        `gorm:"uniqueIndex;not null" json:"email"`
	Password             string        `gorm:"not null" json:"-"`
	Name                 string        `json:"name,omitempty"`
	PasswordResetToken   *string       `gorm:"uniqueIndex" json:"-"`
	PasswordResetExpires *time.Time    `json:"-"`
	Transactions         []Transaction `gorm:"foreignKey:UserID" json:"-"`
	Budgets              []Budget      `gorm:"foreignKey:UserID" json:"-"`
	Goals                []Goal        `gorm:"foreignKey:UserID" json:"-"`
}
