package domain

import "time"

// Notification Model. Fire-and-forget row consumed by the notification list;
// broadcast rows have no UserID and are visible to everyone.
type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Message     string    `gorm:"type:text" json:"message"`
	Type        string    `gorm:"size:64" json:"type"` // e.g. treasury, schedule, general
	IsBroadcast bool      `gorm:"default:false;index" json:"is_broadcast"`
	UserID      *uint     `gorm:"index" json:"user_id,omitempty"` // Recipient when not broadcast
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ActivityLog Model. Minimal audit rows written when an admin edits a
// player's scoring fields.
type ActivityLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AdminID      uint      `gorm:"index;not null" json:"admin_id"`
	Action       string    `gorm:"size:255;not null" json:"action"`
	TargetUserID uint      `gorm:"index" json:"target_user_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}
