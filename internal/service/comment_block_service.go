package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/qs3c/commentblock/config"
	"github.com/qs3c/commentblock/internal/model"
	"github.com/qs3c/commentblock/internal/model/dto"
	"github.com/qs3c/commentblock/internal/pkg/block"
	"github.com/qs3c/commentblock/internal/pkg/textutil"
	"github.com/qs3c/commentblock/internal/repository"
)

// CommentBlockService 组装用户资料页的评论区块
type CommentBlockService struct {
	commentRepo *repository.CommentRepository
	nodeRepo    *repository.NodeRepository
	userRepo    *repository.UserRepository
	renderer    *block.Renderer
	cfg         config.BlockConfig
}

func NewCommentBlockService(
	commentRepo *repository.CommentRepository,
	nodeRepo *repository.NodeRepository,
	userRepo *repository.UserRepository,
	renderer *block.Renderer,
	cfg *config.Config,
) *CommentBlockService {
	return &CommentBlockService{
		commentRepo: commentRepo,
		nodeRepo:    nodeRepo,
		userRepo:    userRepo,
		renderer:    renderer,
		cfg:         cfg.Block.WithDefaults(),
	}
}

// Build 查询评论总数和最近评论，统计词数
func (s *CommentBlockService) Build(ctx context.Context, userID int64) (*dto.CommentBlock, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user %d: %w", userID, err)
	}

	total, err := s.commentRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count comments of user %d: %w", userID, err)
	}

	rows, err := s.commentRepo.ListRecentByUserID(ctx, userID, s.cfg.RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent comments of user %d: %w", userID, err)
	}

	titles, err := s.nodeTitles(ctx, rows)
	if err != nil {
		return nil, err
	}

	labels := s.cfg.Labels
	result := &dto.CommentBlock{
		UserID:         user.ID,
		Username:       user.Username,
		TotalComments:  total,
		RecentComments: make([]*dto.RecentCommentItem, 0, len(rows)),
	}

	for _, row := range rows {
		item := &dto.RecentCommentItem{
			CommentID: row.ID,
			NodeID:    row.EntityID,
			Comment:   labels.MissingComment,
			NodeTitle: labels.MissingTitle,
		}

		if row.CommentBody != nil {
			item.Comment = textutil.StripTags(*row.CommentBody)
			item.WordCount = textutil.CountWords(item.Comment)
		}
		if title, ok := titles[row.EntityID]; ok {
			item.NodeTitle = title
		}

		result.TotalWords += item.WordCount
		result.RecentComments = append(result.RecentComments, item)
	}

	return result, nil
}

// Render 组装并渲染区块
func (s *CommentBlockService) Render(ctx context.Context, userID int64) (*dto.CommentBlock, *block.Markup, error) {
	data, err := s.Build(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	markup, err := s.renderer.Render(data)
	if err != nil {
		return nil, nil, err
	}

	return data, markup, nil
}

// nodeTitles 一次查询取回所有被评论内容的标题
func (s *CommentBlockService) nodeTitles(ctx context.Context, rows []*model.RecentComment) (map[int64]string, error) {
	ids := lo.Uniq(lo.Map(rows, func(r *model.RecentComment, _ int) int64 {
		return r.EntityID
	}))
	if len(ids) == 0 {
		return map[int64]string{}, nil
	}

	nodes, err := s.nodeRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load commented nodes: %w", err)
	}

	return lo.SliceToMap(nodes, func(n *model.Node) (int64, string) {
		return n.ID, n.Title
	}), nil
}
