package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qs3c/commentblock/internal/model"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 在同一事务中写入评论元数据和正文
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment, body *model.CommentBody) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Body").Create(comment).Error; err != nil {
			return err
		}
		if body == nil {
			return nil
		}

		body.EntityID = comment.ID
		if body.Bundle == "" {
			body.Bundle = model.CommentBundle
		}
		if err := tx.Create(body).Error; err != nil {
			return err
		}
		comment.Body = body
		return nil
	})
}

// GetByID 根据 cid 获取评论
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).Where("cid = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete 删除评论及其正文
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entity_id = ?", id).Delete(&model.CommentBody{}).Error; err != nil {
			return err
		}
		return tx.Where("cid = ?", id).Delete(&model.Comment{}).Error
	})
}

// CountByUserID 用户的评论总数
func (r *CommentRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("uid = ?", userID).Count(&count).Error
	return count, err
}

// ListRecentByUserID 用户最近的评论及正文，按创建时间倒序
func (r *CommentRepository) ListRecentByUserID(ctx context.Context, userID int64, limit int) ([]*model.RecentComment, error) {
	var rows []*model.RecentComment
	err := r.db.WithContext(ctx).
		Table("comment_field_data AS c").
		Select("c.cid, c.entity_id, cb.comment_body_value AS comment_body").
		Joins("LEFT JOIN comment__comment_body AS cb ON c.cid = cb.entity_id").
		Where("c.uid = ?", userID).
		Order("c.created DESC").
		Order("c.cid DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// ListByNodeID 获取内容下的评论列表
func (r *CommentRepository) ListByNodeID(ctx context.Context, nodeID int64, page, pageSize int) ([]*model.Comment, int64, error) {
	var comments []*model.Comment
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("entity_id = ? AND entity_type = ?", nodeID, model.CommentEntityTypeNode)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Body").
		Order("created DESC").Order("cid DESC").
		Offset(offset).Limit(pageSize).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}
