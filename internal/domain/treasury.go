package domain

import "time"

// Transaction type values
const (
	TxIncome  = "income"
	TxExpense = "expense"
)

// Transaction status values. There is no "rejected" status: rejection is a
// hard delete of the row.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// TreasuryTransaction Model. Amounts are whole rupiah (int64). Only approved
// rows ever contribute to balance aggregates.
type TreasuryTransaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                          // Primary key
	UserID    *uint     `gorm:"index" json:"user_id"`                         // Submitting player, nil for manual admin entries
	Amount    int64     `gorm:"not null" json:"amount"`                       // Whole rupiah
	Category  string    `gorm:"size:128;not null" json:"category"`            // e.g. "Kas Week 2", "Sponsor", "Court Rent"
	Type      string    `gorm:"size:16;not null;index" json:"type"`           // income or expense
	Status    string    `gorm:"size:16;default:pending;index" json:"status"`  // pending or approved
	ProofURL  string    `gorm:"size:512" json:"proof_url,omitempty"`          // Uploaded proof-of-payment image path
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`             // Submission timestamp
}
