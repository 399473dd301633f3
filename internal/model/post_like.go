package model

import (
	"time"
)

type PostLike struct {
	MemberID  uint64    `gorm:"primaryKey" json:"memberId"`
	PostID    uint64    `gorm:"primaryKey;index:idx_post_likes_post_id" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (PostLike) TableName() string {
	return "post_likes"
}
