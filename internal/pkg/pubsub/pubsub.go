package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

const (
	DefaultChannel = "comment_block_updates"

	MessageTypeBlockChanged = "comment_block_changed"
)

// 触发区块变更的动作
const (
	ActionCommentCreated = "comment_created"
	ActionCommentDeleted = "comment_deleted"
)

// BlockChangedMessage 某个用户的评论区块需要重新渲染
type BlockChangedMessage struct {
	Type      string `json:"type"`
	UserID    int64  `json:"user_id"`
	CommentID int64  `json:"comment_id,omitempty"`
	Action    string `json:"action,omitempty"`
}

// Publisher Redis 发布者
type Publisher struct {
	client  *redis.Client
	channel string
}

// NewPublisher 创建发布者，channel 为空时使用默认频道
func NewPublisher(client *redis.Client, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{client: client, channel: channel}
}

// PublishBlockChanged 发布区块变更消息
func (p *Publisher) PublishBlockChanged(ctx context.Context, msg *BlockChangedMessage) error {
	msg.Type = MessageTypeBlockChanged

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal block message: %w", err)
	}

	return p.client.Publish(ctx, p.channel, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client  *redis.Client
	channel string
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client, channel string) *Subscriber {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Subscriber{client: client, channel: channel}
}

// Subscribe 订阅区块变更消息，阻塞直到 ctx 结束
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*BlockChangedMessage)) error {
	ps := s.client.Subscribe(ctx, s.channel)
	defer ps.Close()

	// 等待订阅确认
	if _, err := ps.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe %s: %w", s.channel, err)
	}

	ch := ps.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var blockMsg BlockChangedMessage
			if err := json.Unmarshal([]byte(msg.Payload), &blockMsg); err != nil {
				log.Warn().Err(err).Str("channel", s.channel).Msg("Dropping malformed block message")
				continue
			}
			if blockMsg.Type != MessageTypeBlockChanged {
				continue
			}

			handler(&blockMsg)
		}
	}
}
