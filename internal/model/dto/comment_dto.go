package dto

// CommentBlock 用户资料页评论区块数据
type CommentBlock struct {
	UserID         int64                `json:"user_id"`
	Username       string               `json:"username"`
	TotalComments  int64                `json:"total_comments"`
	TotalWords     int                  `json:"total_words"`
	RecentComments []*RecentCommentItem `json:"recent_comments"`
}

// RecentCommentItem 区块中的一条最近评论
type RecentCommentItem struct {
	CommentID int64  `json:"comment_id"`
	NodeID    int64  `json:"node_id"`
	Comment   string `json:"comment"`
	NodeTitle string `json:"node_title"`
	WordCount int    `json:"word_count"`
}

// CreateCommentRequest 发表评论请求
type CreateCommentRequest struct {
	Subject string `json:"subject" binding:"omitempty,max=64"`
	Body    string `json:"body" binding:"required,min=1,max=65535"`
	Format  string `json:"format" binding:"omitempty,max=255"`
}

// CommentItem 评论项
type CommentItem struct {
	ID        int64  `json:"id"`
	NodeID    int64  `json:"node_id"`
	UserID    int64  `json:"user_id"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Format    string `json:"format"`
	CreatedAt string `json:"created_at"`
}
