package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Hub 按被查看的用户资料分组管理观看者连接
type Hub struct {
	// 同一个资料页可以同时被多个连接查看
	viewers map[int64]map[*Client]struct{}
	mu      sync.RWMutex
}

// Client 一个正在查看某资料页的连接
type Client struct {
	ProfileID int64
	Conn      *websocket.Conn
	mu        sync.Mutex // 写锁，防止并发写入
}

const pingWriteWait = 5 * time.Second

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		viewers: make(map[int64]map[*Client]struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.viewers[client.ProfileID] == nil {
		h.viewers[client.ProfileID] = make(map[*Client]struct{})
	}
	h.viewers[client.ProfileID][client] = struct{}{}

	log.Debug().
		Int64("profile_id", client.ProfileID).
		Int("profile_viewers", len(h.viewers[client.ProfileID])).
		Msg("Viewer connected")
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.viewers[client.ProfileID]; ok {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.viewers, client.ProfileID)
		}
	}
	log.Debug().Int64("profile_id", client.ProfileID).Msg("Viewer disconnected")
}

// Broadcast 向某资料页的所有观看者发送消息，返回成功写入的连接数
func (h *Hub) Broadcast(profileID int64, msg *Message) (int, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return 0, err
	}

	h.mu.RLock()
	conns, ok := h.viewers[profileID]
	if !ok {
		h.mu.RUnlock()
		return 0, nil
	}
	// 复制一份引用，避免长时间持锁
	clients := make([]*Client, 0, len(conns))
	for c := range conns {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range clients {
		c.mu.Lock()
		err := c.Conn.WriteMessage(websocket.TextMessage, data)
		c.mu.Unlock()
		if err != nil {
			log.Warn().Err(err).Int64("profile_id", profileID).Msg("Broadcast write failed")
			continue
		}
		sent++
	}
	return sent, nil
}

// HasViewers 是否有人正在查看该资料页
func (h *Hub) HasViewers(profileID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conns, ok := h.viewers[profileID]
	return ok && len(conns) > 0
}

// ConnectionCount 获取在线连接数
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	total := 0
	for _, conns := range h.viewers {
		total += len(conns)
	}
	return total
}

// Ping 向所有连接发送 ping，写失败的连接被移除，返回移除的数量
func (h *Hub) Ping() int {
	h.mu.RLock()
	clients := make([]*Client, 0)
	for _, conns := range h.viewers {
		for c := range conns {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	dropped := 0
	for _, c := range clients {
		c.mu.Lock()
		err := c.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(pingWriteWait))
		c.mu.Unlock()
		if err != nil {
			h.Unregister(c)
			c.Conn.Close()
			dropped++
		}
	}
	return dropped
}

// RunKeepalive 定时 ping 所有连接，直到 ctx 结束
func (h *Hub) RunKeepalive(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dropped := h.Ping(); dropped > 0 {
				log.Debug().Int("dropped", dropped).Int("remaining", h.ConnectionCount()).Msg("Dropped dead viewers")
			}
		}
	}
}
