package models

import "time"

type Notification struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	UserID  uint   `gorm:"index;not null" json:"user_id"`
	Kind    string `gorm:"size:50;not null" json:"kind"`
	Message string `gorm:"size:500;not null" json:"message"`
	Link    string `gorm:"size:255" json:"link"`
	Seen    bool   `gorm:"default:false" json:"seen"`

	CreatedAt time.Time `json:"created_at"`
}
