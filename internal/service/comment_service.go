package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/qs3c/commentblock/config"
	"github.com/qs3c/commentblock/internal/model"
	"github.com/qs3c/commentblock/internal/model/dto"
	"github.com/qs3c/commentblock/internal/pkg/pubsub"
	"github.com/qs3c/commentblock/internal/repository"
)

var (
	ErrCommentNotFound   = errors.New("评论不存在")
	ErrCommentPermission = errors.New("无权操作此评论")
)

// BlockNotifier 评论变化后通知区块刷新
type BlockNotifier interface {
	PublishBlockChanged(ctx context.Context, msg *pubsub.BlockChangedMessage) error
}

// NopNotifier 不发送任何通知
type NopNotifier struct{}

func (NopNotifier) PublishBlockChanged(context.Context, *pubsub.BlockChangedMessage) error {
	return nil
}

type CommentService struct {
	commentRepo *repository.CommentRepository
	nodeRepo    *repository.NodeRepository
	notifier    BlockNotifier
	cfg         *config.Config
}

func NewCommentService(
	commentRepo *repository.CommentRepository,
	nodeRepo *repository.NodeRepository,
	notifier BlockNotifier,
	cfg *config.Config,
) *CommentService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &CommentService{
		commentRepo: commentRepo,
		nodeRepo:    nodeRepo,
		notifier:    notifier,
		cfg:         cfg,
	}
}

// Create 发表评论
func (s *CommentService) Create(ctx context.Context, userID, nodeID int64, req *dto.CreateCommentRequest) (*dto.CommentItem, error) {
	if _, err := s.nodeRepo.GetByID(ctx, nodeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNodeNotFound
		}
		return nil, err
	}

	format := req.Format
	if format == "" {
		format = model.BodyFormatBasicHTML
	}

	comment := &model.Comment{
		UserID:     userID,
		EntityID:   nodeID,
		EntityType: model.CommentEntityTypeNode,
		Subject:    req.Subject,
		Status:     true,
	}
	body := &model.CommentBody{
		Value:  req.Body,
		Format: format,
	}

	if err := s.commentRepo.Create(ctx, comment, body); err != nil {
		return nil, err
	}

	s.notify(ctx, userID, comment.ID, pubsub.ActionCommentCreated)

	return buildCommentItem(comment), nil
}

// Delete 删除评论，只允许作者本人操作
func (s *CommentService) Delete(ctx context.Context, userID, commentID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.UserID != userID {
		return ErrCommentPermission
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}

	s.notify(ctx, userID, commentID, pubsub.ActionCommentDeleted)

	return nil
}

// ListByNodeID 获取内容下的评论列表
func (s *CommentService) ListByNodeID(ctx context.Context, nodeID int64, page, pageSize int) ([]*dto.CommentItem, int64, error) {
	if _, err := s.nodeRepo.GetByID(ctx, nodeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrNodeNotFound
		}
		return nil, 0, err
	}

	comments, total, err := s.commentRepo.ListByNodeID(ctx, nodeID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.CommentItem, len(comments))
	for i, c := range comments {
		items[i] = buildCommentItem(c)
	}

	return items, total, nil
}

// notify 通知失败只记录日志，不影响写操作
func (s *CommentService) notify(ctx context.Context, userID, commentID int64, action string) {
	err := s.notifier.PublishBlockChanged(ctx, &pubsub.BlockChangedMessage{
		UserID:    userID,
		CommentID: commentID,
		Action:    action,
	})
	if err != nil {
		log.Warn().Err(err).
			Int64("user_id", userID).
			Int64("comment_id", commentID).
			Str("action", action).
			Msg("Failed to publish comment block change")
	}
}

func buildCommentItem(c *model.Comment) *dto.CommentItem {
	item := &dto.CommentItem{
		ID:        c.ID,
		NodeID:    c.EntityID,
		UserID:    c.UserID,
		Subject:   c.Subject,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}

	if c.Body != nil {
		item.Body = c.Body.Value
		item.Format = c.Body.Format
	}

	return item
}
