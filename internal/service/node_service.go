package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/commentblock/internal/model"
	"github.com/qs3c/commentblock/internal/model/dto"
	"github.com/qs3c/commentblock/internal/repository"
)

var ErrNodeNotFound = errors.New("内容不存在")

const defaultNodeType = "article"

type NodeService struct {
	nodeRepo *repository.NodeRepository
}

func NewNodeService(nodeRepo *repository.NodeRepository) *NodeService {
	return &NodeService{nodeRepo: nodeRepo}
}

// Create 创建内容
func (s *NodeService) Create(ctx context.Context, userID int64, req *dto.CreateNodeRequest) (*dto.NodeItem, error) {
	nodeType := req.Type
	if nodeType == "" {
		nodeType = defaultNodeType
	}

	node := &model.Node{
		UserID: userID,
		Type:   nodeType,
		Title:  req.Title,
		Status: true,
	}
	if err := s.nodeRepo.Create(ctx, node); err != nil {
		return nil, err
	}

	return buildNodeItem(node), nil
}

// Get 获取内容
func (s *NodeService) Get(ctx context.Context, nodeID int64) (*dto.NodeItem, error) {
	node, err := s.nodeRepo.GetByID(ctx, nodeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNodeNotFound
		}
		return nil, err
	}

	return buildNodeItem(node), nil
}

func buildNodeItem(n *model.Node) *dto.NodeItem {
	return &dto.NodeItem{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}
