package domain

import "time"

// WeeklyDue Model. Created or overwritten only as a side effect of approving
// a "Kas Week <N>" transaction; uniquely keyed by (user, week, month, year)
// so a repeated approval upserts instead of duplicating.
type WeeklyDue struct {
	ID            uint      `gorm:"primaryKey" json:"id"`                                     // Primary key
	UserID        uint      `gorm:"not null;uniqueIndex:idx_due_period" json:"user_id"`       // Paying player
	WeekNumber    int       `gorm:"not null;uniqueIndex:idx_due_period" json:"week_number"`   // 1..4
	MonthNumber   int       `gorm:"not null;uniqueIndex:idx_due_period" json:"month_number"`  // 1..12
	Year          int       `gorm:"not null;uniqueIndex:idx_due_period" json:"year"`          // Reporting year
	IsPaid        bool      `gorm:"default:false" json:"is_paid"`                             // Paid checkmark
	TransactionID *uint     `gorm:"index" json:"transaction_id"`                              // Approved transaction that settled this due
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}
