package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/qs3c/commentblock/internal/pkg/pubsub"
	"github.com/qs3c/commentblock/internal/pkg/ws"
)

const MessageTypeCommentBlock = "comment_block"

// BlockPush 推送给观看者的区块内容
type BlockPush struct {
	UserID        int64  `json:"user_id"`
	HTML          string `json:"html"`
	TotalComments int64  `json:"total_comments"`
	TotalWords    int    `json:"total_words"`
}

// LiveBlockService 区块变更后重新渲染并推送给正在查看资料页的连接
type LiveBlockService struct {
	blockService *CommentBlockService
	hub          *ws.Hub
}

func NewLiveBlockService(blockService *CommentBlockService, hub *ws.Hub) *LiveBlockService {
	return &LiveBlockService{
		blockService: blockService,
		hub:          hub,
	}
}

// HandleBlockChanged 处理一条区块变更消息，返回推送成功的连接数
func (s *LiveBlockService) HandleBlockChanged(ctx context.Context, msg *pubsub.BlockChangedMessage) (int, error) {
	if !s.hub.HasViewers(msg.UserID) {
		return 0, nil
	}

	data, markup, err := s.blockService.Render(ctx, msg.UserID)
	if err != nil {
		return 0, err
	}

	return s.hub.Broadcast(msg.UserID, &ws.Message{
		Type: MessageTypeCommentBlock,
		Data: &BlockPush{
			UserID:        data.UserID,
			HTML:          string(markup.HTML),
			TotalComments: data.TotalComments,
			TotalWords:    data.TotalWords,
		},
	})
}

// Run 消费订阅消息直到 ctx 结束
func (s *LiveBlockService) Run(ctx context.Context, sub *pubsub.Subscriber) error {
	err := sub.Subscribe(ctx, func(msg *pubsub.BlockChangedMessage) {
		s.handle(ctx, msg)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// PublishBlockChanged 在进程内直接刷新，未启用 Redis 时作为 BlockNotifier 使用
func (s *LiveBlockService) PublishBlockChanged(ctx context.Context, msg *pubsub.BlockChangedMessage) error {
	msg.Type = pubsub.MessageTypeBlockChanged
	s.handle(ctx, msg)
	return nil
}

func (s *LiveBlockService) handle(ctx context.Context, msg *pubsub.BlockChangedMessage) {
	sent, err := s.HandleBlockChanged(ctx, msg)
	if err != nil {
		log.Error().Err(err).Int64("user_id", msg.UserID).Msg("Failed to refresh comment block")
		return
	}
	if sent > 0 {
		log.Debug().Int64("user_id", msg.UserID).Int("viewers", sent).Msg("Comment block pushed")
	}
}
