package dto

import "time"

// MemberDTO 会员资料
type MemberDTO struct {
	MemberID       uint64     `json:"member_id"`
	Email          string     `json:"email,omitempty"`
	Nickname       string     `json:"nickname"`
	AvatarURL      string     `json:"avatar_url"`
	Bio            *string    `json:"bio,omitempty"`
	FollowerCount  int        `json:"follower_count"`
	FollowingCount int        `json:"following_count"`
	IsFollowing    bool       `json:"is_following"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// UpdateMemberDTO 修改会员资料
type UpdateMemberDTO struct {
	Nickname  *string `json:"nickname,omitempty" validate:"omitempty,min=1,max=15"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=200"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,max=512"`
}

// ChangePasswordDTO 修改密码
type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" binding:"required" validate:"min=6,max=20"`
	NewPassword string `json:"new_password" binding:"required" validate:"min=6,max=20"`
}
