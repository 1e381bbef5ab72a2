package dto

// CreateNodeRequest 创建内容请求
type CreateNodeRequest struct {
	Type  string `json:"type" binding:"omitempty,max=32"`
	Title string `json:"title" binding:"required,min=1,max=255"`
}

// NodeItem 内容项
type NodeItem struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}
