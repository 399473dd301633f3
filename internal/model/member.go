package model

import (
	"time"
)

type Member struct {
	ID             uint64    `gorm:"primaryKey"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_email"`
	Password       string    `gorm:"type:varchar(255);not null"`
	Nickname       string    `gorm:"type:varchar(50);not null"`
	Bio            *string   `gorm:"type:varchar(255);default:''"`
	AvatarURL      string    `gorm:"type:varchar(512);column:avatar_url;default:'default_avatar.png'"`
	FollowerCount  int       `gorm:"not null;default:0" json:"followerCount"`
	FollowingCount int       `gorm:"not null;default:0" json:"followingCount"`
	IsDeleted      bool      `gorm:"type:tinyint(1);not null;default:0" json:"isDeleted"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Member) TableName() string {
	return "members"
}
