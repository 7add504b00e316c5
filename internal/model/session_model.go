package model

import "time"

type Session struct {
	UserID            int64     `gorm:"primaryKey;autoIncrement:false"`
	Mode              string    `gorm:"type:varchar(20);not null;default:''"`
	LastMenuChatID    *int64    `gorm:"type:bigint"`
	LastMenuMessageID *int64    `gorm:"type:bigint"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (Session) TableName() string {
	return "sessions"
}
