package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qs3c/commentblock/internal/model"
)

type NodeRepository struct {
	db *gorm.DB
}

func NewNodeRepository(db *gorm.DB) *NodeRepository {
	return &NodeRepository{db: db}
}

func (r *NodeRepository) Create(ctx context.Context, node *model.Node) error {
	return r.db.WithContext(ctx).Create(node).Error
}

func (r *NodeRepository) GetByID(ctx context.Context, id int64) (*model.Node, error) {
	var node model.Node
	err := r.db.WithContext(ctx).Where("nid = ?", id).First(&node).Error
	if err != nil {
		return nil, err
	}
	return &node, nil
}

// GetByIDs 批量加载内容，不存在的 ID 直接忽略
func (r *NodeRepository) GetByIDs(ctx context.Context, ids []int64) ([]*model.Node, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var nodes []*model.Node
	err := r.db.WithContext(ctx).Where("nid IN ?", ids).Find(&nodes).Error
	return nodes, err
}
