package model

import (
	"time"
)

type Post struct {
	ID             uint64    `gorm:"primaryKey"`
	MemberID       uint64    `gorm:"not null;index:idx_posts_member_id" json:"memberId"`
	AuthorNickname string    `gorm:"type:varchar(50);not null" json:"authorNickname"` // 作者昵称快照
	Title          string    `gorm:"type:varchar(255);not null" json:"title"`
	Content        string    `gorm:"not null" json:"content"`
	ImageURL       *string   `gorm:"type:varchar(512);column:image_url" json:"imageUrl"`
	ThumbnailURL   *string   `gorm:"type:varchar(512);column:thumbnail_url" json:"thumbnailUrl"`
	ViewCount      int       `gorm:"not null;default:0" json:"viewCount"`
	LikeCount      int       `gorm:"not null;default:0" json:"likeCount"`
	IsDeleted      bool      `gorm:"type:tinyint(1);not null;default:0" json:"isDeleted"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// 关联关系
	Member   Member    `gorm:"foreignKey:MemberID;references:ID"`
	Hashtags []Hashtag `gorm:"many2many:post_hashtags;"`
}

func (Post) TableName() string {
	return "posts"
}
