package model

import "time"

type RefreshToken struct {
	ID        uint64    `gorm:"primaryKey"`
	MemberID  uint64    `gorm:"not null;index:idx_refresh_tokens_member_id"`
	Token     string    `gorm:"type:varchar(512);not null;uniqueIndex:idx_token,length:255"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
