package model

import (
	"time"
)

const (
	CommentEntityTypeNode = "node"
	CommentBundle         = "comment"
	BodyFormatBasicHTML   = "basic_html"
)

// Comment 评论元数据
type Comment struct {
	ID         int64     `gorm:"column:cid;primaryKey" json:"id"`
	UserID     int64     `gorm:"column:uid;not null;index:idx_comment_uid_created,priority:1" json:"user_id"`
	EntityID   int64     `gorm:"column:entity_id;not null;index" json:"entity_id"`
	EntityType string    `gorm:"size:32;not null;default:node" json:"entity_type"`
	Subject    string    `gorm:"size:64" json:"subject"`
	Status     bool      `gorm:"default:true" json:"status"`
	CreatedAt  time.Time `gorm:"column:created;index:idx_comment_uid_created,priority:2" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:changed" json:"updated_at"`

	// 关联
	Body *CommentBody `gorm:"foreignKey:EntityID;references:ID" json:"body,omitempty"`
}

func (Comment) TableName() string {
	return "comment_field_data"
}

// CommentBody 评论正文，以 cid 为主键
type CommentBody struct {
	EntityID int64  `gorm:"column:entity_id;primaryKey;autoIncrement:false" json:"entity_id"`
	Bundle   string `gorm:"size:128;not null;default:comment" json:"bundle"`
	Value    string `gorm:"column:comment_body_value;type:text" json:"value"`
	Format   string `gorm:"column:comment_body_format;size:255" json:"format"`
}

func (CommentBody) TableName() string {
	return "comment__comment_body"
}

// RecentComment 最近评论查询的结果行
type RecentComment struct {
	ID          int64   `gorm:"column:cid"`
	EntityID    int64   `gorm:"column:entity_id"`
	CommentBody *string `gorm:"column:comment_body"`
}
