package model

import (
	"time"
)

// Node 被评论的内容实体
type Node struct {
	ID        int64     `gorm:"column:nid;primaryKey" json:"id"`
	UserID    int64     `gorm:"column:uid;not null;index" json:"user_id"`
	Type      string    `gorm:"size:32;not null;default:article" json:"type"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Status    bool      `gorm:"default:true" json:"status"`
	CreatedAt time.Time `gorm:"column:created;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:changed" json:"updated_at"`
}

func (Node) TableName() string {
	return "node_field_data"
}
