package model

import "time"

type Hashtag struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(50);not null;uniqueIndex:idx_hashtag_name"`
	CreatedAt time.Time
}

func (Hashtag) TableName() string {
	return "hashtags"
}
