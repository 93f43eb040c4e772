package domain

import "time"

// AttendanceLog Model. One row per accepted scan; at most one row may exist
// per (user, session, calendar day) — the scan handler checks before insert.
type AttendanceLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                   // Primary key
	UserID      uint      `gorm:"index;not null" json:"user_id"`          // Foreign key to User
	SessionName string    `gorm:"size:255;not null" json:"session_name"`  // Label the QR token was issued for
	Signature   string    `gorm:"size:512" json:"signature,omitempty"`    // Optional signature data
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"` // Scan timestamp
}
