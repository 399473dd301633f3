package model

import "time"

type Otp struct {
	ID        uint64    `gorm:"primaryKey"`
	Email     string    `gorm:"type:varchar(255);not null;index:idx_otp_email"`
	Code      string    `gorm:"type:varchar(10);not null"`
	Used      bool      `gorm:"type:tinyint(1);not null;default:0"`
	ExpiresAt time.Time `gorm:"not null;index:idx_expires_at"`
	CreatedAt time.Time
}

func (Otp) TableName() string {
	return "otps"
}
