package dto

// PostDTO 帖子详情
type PostDTO struct {
	// Post
	ID           uint64   `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	ImageURL     *string  `json:"image_url,omitempty"`
	ThumbnailURL *string  `json:"thumbnail_url,omitempty"`
	ViewCount    int      `json:"view_count"`
	LikeCount    int      `json:"like_count"`
	Hashtags     []string `json:"hashtags"`
	IsLiked      bool     `json:"is_liked"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`

	// Member
	MemberID  uint64 `json:"member_id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

// PostBaseDTO 帖子 - 新增或修改
type PostBaseDTO struct {
	ID           uint64  `json:"id"`
	Title        string  `json:"title" binding:"required" validate:"min=1,max=255"`
	Content      string  `json:"content" binding:"required" validate:"min=1,max=5000"`
	ImageURL     *string `json:"image_url,omitempty" validate:"omitempty,max=512"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty" validate:"omitempty,max=512"`
}

// PostSummaryDTO 帖子列表项
type PostSummaryDTO struct {
	ID           uint64   `json:"id"`
	Title        string   `json:"title"`
	ThumbnailURL *string  `json:"thumbnail_url,omitempty"`
	ViewCount    int      `json:"view_count"`
	LikeCount    int      `json:"like_count"`
	Hashtags     []string `json:"hashtags"`
	MemberID     uint64   `json:"member_id"`
	Nickname     string   `json:"nickname"`
	CreatedAt    string   `json:"created_at"`
}

// LikeStateDTO 点赞切换后的状态
type LikeStateDTO struct {
	PostID    uint64 `json:"post_id"`
	LikeCount int    `json:"like_count"`
	IsLiked   bool   `json:"is_liked"`
}

// PostMetricDTO 帖子指标趋势点
type PostMetricDTO struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// PostTrendDTO 帖子趋势返回包装
type PostTrendDTO struct {
	PostID uint64           `json:"post_id"`
	Days   int              `json:"days"` // 7 或 30
	Likes  []*PostMetricDTO `json:"likes"`
	Views  []*PostMetricDTO `json:"views"`
}
