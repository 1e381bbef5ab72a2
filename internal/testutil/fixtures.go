package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/commentblock/internal/model"
)

var seq int64

func nextSeq() int64 {
	return atomic.AddInt64(&seq, 1)
}

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	n := nextSeq()
	email := fmt.Sprintf("test_%d@example.com", n)
	passwordHash := "$2a$10$abcdefghijklmnopqrstuvwxyz123456" // bcrypt hash placeholder
	user := &model.User{
		Username:     fmt.Sprintf("testuser_%d", n),
		Email:        &email,
		PasswordHash: &passwordHash,
		Status:       true,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = &email
	}
}

// WithPasswordHash 设置密码哈希
func WithPasswordHash(hash string) func(*model.User) {
	return func(u *model.User) {
		u.PasswordHash = &hash
	}
}

// TestNode 创建测试内容
func TestNode(t *testing.T, db *gorm.DB, userID int64, title string) *model.Node {
	t.Helper()

	node := &model.Node{
		UserID: userID,
		Type:   "article",
		Title:  title,
		Status: true,
	}

	if err := db.Create(node).Error; err != nil {
		t.Fatalf("Failed to create test node: %v", err)
	}

	return node
}

// CommentOption 测试评论选项
type CommentOption func(*model.Comment)

// WithCreatedAt 设置评论创建时间
func WithCreatedAt(at time.Time) CommentOption {
	return func(c *model.Comment) {
		c.CreatedAt = at
	}
}

// TestComment 创建测试评论（含正文）
func TestComment(t *testing.T, db *gorm.DB, userID, nodeID int64, body string, opts ...CommentOption) *model.Comment {
	t.Helper()

	comment := TestCommentWithoutBody(t, db, userID, nodeID, opts...)

	commentBody := &model.CommentBody{
		EntityID: comment.ID,
		Bundle:   model.CommentBundle,
		Value:    body,
		Format:   model.BodyFormatBasicHTML,
	}
	if err := db.Create(commentBody).Error; err != nil {
		t.Fatalf("Failed to create test comment body: %v", err)
	}
	comment.Body = commentBody

	return comment
}

// TestCommentWithoutBody 只创建评论元数据，不写正文表
func TestCommentWithoutBody(t *testing.T, db *gorm.DB, userID, nodeID int64, opts ...CommentOption) *model.Comment {
	t.Helper()

	comment := &model.Comment{
		UserID:     userID,
		EntityID:   nodeID,
		EntityType: model.CommentEntityTypeNode,
		Status:     true,
	}

	for _, opt := range opts {
		opt(comment)
	}

	if err := db.Omit("Body").Create(comment).Error; err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}

	return comment
}
