package dto

// FollowStateDTO 关注状态返回
type FollowStateDTO struct {
	MemberID      uint64 `json:"member_id"`
	FollowerCount int    `json:"follower_count"`
	IsFollowing   bool   `json:"is_following"`
}

// FollowListItemDTO 关注/粉丝列表项
type FollowListItemDTO struct {
	MemberID  uint64 `json:"member_id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
	CreatedAt string `json:"created_at"`
}
