package model

import (
	"time"
)

type User struct {
	ID           int64     `gorm:"column:uid;primaryKey" json:"id"`
	Username     string    `gorm:"column:name;size:60;uniqueIndex;not null" json:"username"`
	Email        *string   `gorm:"column:mail;size:254;uniqueIndex" json:"email,omitempty"`
	PasswordHash *string   `gorm:"column:pass;size:255" json:"-"`
	Status       bool      `gorm:"default:true" json:"status"`
	CreatedAt    time.Time `gorm:"column:created" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:changed" json:"updated_at"`
}

func (User) TableName() string {
	return "users_field_data"
}
