package model

import (
	"time"
)

type PostView struct {
	ID       uint64    `gorm:"primaryKey"`
	PostID   uint64    `gorm:"not null;index:idx_post_views_post_id" json:"postId"`
	MemberID uint64    `gorm:"not null" json:"memberId"` // 0 表示匿名浏览
	ViewedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"viewedAt"`
}

func (PostView) TableName() string {
	return "post_views"
}
