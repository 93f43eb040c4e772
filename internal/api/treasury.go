package api

import (
	"context"  // Context for Redis operations
	"errors"   // Sentinel errors for transaction rollback
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Default reporting period

	"futsal_club/internal/domain"   // Importing domain models
	"futsal_club/internal/storage"  // Local blob store
	"futsal_club/internal/treasury" // Ledger aggregation and dues settlement
	"futsal_club/internal/utils"    // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// errAlreadyApproved guards against a double-tapped approve button
var errAlreadyApproved = errors.New("transaction already approved")

// SubmitTreasuryHandler lets a player submit a dues payment with a
// proof-of-payment image. The blob is saved first; if the transaction insert
// fails afterwards the orphaned blob is deleted so no partial state persists.
func SubmitTreasuryHandler(db *gorm.DB, store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Validate form fields before touching storage
		amount, err := strconv.ParseInt(c.PostForm("amount"), 10, 64)
		if err != nil || amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		category := c.PostForm("category")
		if category == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category is required"})
			return
		}
		proof, err := c.FormFile("proof")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Proof image is required"})
			return
		}
		if proof.Size > 5*1024*1024 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Proof image too large (max 5MB)"})
			return
		}
		// Step 1: save the proof image
		proofURL, err := store.SaveUpload(proof, "proofs")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save proof image"})
			return
		}
		// Step 2: insert the pending transaction
		tx := domain.TreasuryTransaction{
			UserID:   &userID,
			Amount:   amount,
			Category: category,
			Type:     domain.TxIncome,
			Status:   domain.StatusPending,
			ProofURL: proofURL,
		}
		if err := db.Create(&tx).Error; err != nil {
			// Compensate: remove the blob saved in step 1
			_ = store.Remove(proofURL)
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // Submitting player
				"amount":  amount,      // Submitted amount
				"error":   err.Error(), // Error message
			}).Error("Treasury submission failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Submission failed"})
			return
		}
		// Notify admins; fire-and-forget, a failure never undoes the submission
		notif := domain.Notification{
			Title:       "New payment submitted",
			Message:     category + " awaiting approval",
			Type:        "treasury",
			IsBroadcast: true,
		}
		if err := db.Create(&notif).Error; err != nil {
			logrus.WithField("error", err.Error()).Warn("Failed to insert treasury notification")
		}
		// Log successful submission
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,      // Submitting player
			"tx_id":    tx.ID,       // New transaction id
			"amount":   amount,      // Submitted amount
			"category": category,    // Category label
		}).Info("Treasury submission")
		c.JSON(http.StatusCreated, gin.H{"id": tx.ID, "proof_url": proofURL, "status": tx.Status})
	}
}

// TreasurySummaryHandler returns total income, total expense and balance over
// approved transactions only
func TreasurySummaryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		var cached struct {
			TotalIncome  int64 `json:"total_income"`
			TotalExpense int64 `json:"total_expense"`
			Balance      int64 `json:"balance"`
		}
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKeySummary, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"total_income":  cached.TotalIncome,
				"total_expense": cached.TotalExpense,
				"balance":       cached.Balance,
				"cached":        true, // Indicate response is from cache
			})
			return
		}
		income, expense, err := treasury.Summary(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
			return
		}
		resp := gin.H{
			"total_income":  income,           // Sum of approved income
			"total_expense": expense,          // Sum of approved expense
			"balance":       income - expense, // Derived balance
			"cached":        false,
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKeySummary, resp, 60*time.Second)
		c.JSON(http.StatusOK, resp)
	}
}

// ListTreasuryHandler returns the approved ledger, newest first, with an
// optional type filter
func ListTreasuryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize, offset := pageParams(c)
		query := db.Model(&domain.TreasuryTransaction{}).Where("status = ?", domain.StatusApproved)
		if txType := c.Query("type"); txType != "" {
			query = query.Where("type = ?", txType) // Filter by transaction type
		}
		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count transactions"})
			return
		}
		var txs []domain.TreasuryTransaction
		if err := query.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&txs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		c.JSON(http.StatusOK, gin.H{
			"transactions": txs,        // Approved rows
			"page":         page,       // Current page
			"page_size":    pageSize,   // Page size
			"total":        total,      // Total rows
			"total_pages":  totalPages, // Total pages
		})
	}
}

// ListPendingHandler returns the pending queue for admin review, oldest first
func ListPendingHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var txs []domain.TreasuryTransaction
		if err := db.Where("status = ?", domain.StatusPending).Order("created_at asc").Find(&txs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending transactions"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"transactions": txs})
	}
}

// ApproveRequest carries the reporting period an approval lands in. The
// period is whatever the admin's client currently has selected; when omitted
// it defaults to the current month and year.
type ApproveRequest struct {
	Month int `json:"month"` // 1..12
	Year  int `json:"year"`
}

// ApproveHandler marks a pending transaction approved. When the category is
// "Kas Week <N>" a WeeklyDue cell is settled for (submitter, N, month, year)
// in the same database transaction.
func ApproveHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ApproveRequest
		// Body is optional; an empty body means the current period
		_ = c.ShouldBindJSON(&req)
		now := time.Now()
		if req.Month < 1 || req.Month > 12 {
			req.Month = int(now.Month())
		}
		if req.Year == 0 {
			req.Year = now.Year()
		}
		var tx domain.TreasuryTransaction
		if err := db.First(&tx, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		err := db.Transaction(func(dtx *gorm.DB) error {
			// Re-read inside the transaction so a double-tap cannot approve twice
			var cur domain.TreasuryTransaction
			if err := dtx.First(&cur, tx.ID).Error; err != nil {
				return err
			}
			if cur.Status == domain.StatusApproved {
				return errAlreadyApproved
			}
			if err := dtx.Model(&cur).Update("status", domain.StatusApproved).Error; err != nil {
				return err
			}
			// Dues side effect only for the weekly dues category convention
			if week, isKas := treasury.ParseKasWeek(cur.Category); isKas && cur.UserID != nil {
				return treasury.SettleWeeklyDue(dtx, *cur.UserID, week, req.Month, req.Year, cur.ID)
			}
			return nil
		})
		// Handle transaction result
		if errors.Is(err, errAlreadyApproved) {
			c.JSON(http.StatusConflict, gin.H{"error": "Transaction already approved"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"tx_id": tx.ID,       // Transaction id
				"error": err.Error(), // Error message
			}).Error("Approval failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Approval failed"})
			return
		}
		// Log successful approval
		logrus.WithFields(logrus.Fields{
			"tx_id":    tx.ID,        // Transaction id
			"amount":   tx.Amount,    // Approved amount
			"category": tx.Category,  // Category label
			"month":    req.Month,    // Reporting period month
			"year":     req.Year,     // Reporting period year
		}).Info("Transaction approved")
		// Invalidate the summary and the affected period's grid
		_ = utils.DeleteCache(context.Background(), rdb, cacheKeySummary, duesGridKey(req.Month, req.Year))
		c.JSON(http.StatusOK, gin.H{"message": "Transaction approved", "month": req.Month, "year": req.Year})
	}
}

// DeleteTreasuryHandler hard-deletes a transaction. Rejection is deletion:
// there is no rejected status. The proof blob is removed best-effort.
func DeleteTreasuryHandler(db *gorm.DB, rdb *redis.Client, store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tx domain.TreasuryTransaction
		if err := db.First(&tx, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		if err := db.Delete(&tx).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed"})
			return
		}
		if tx.ProofURL != "" {
			_ = store.Remove(tx.ProofURL) // Blob cleanup, best effort
		}
		logrus.WithFields(logrus.Fields{
			"tx_id":  tx.ID,     // Deleted transaction id
			"amount": tx.Amount, // Amount removed from the ledger
			"status": tx.Status, // pending = rejection, approved = correction
		}).Info("Transaction deleted")
		// Deleted rows must vanish from every aggregate immediately
		_ = utils.DeleteCache(context.Background(), rdb, cacheKeySummary)
		c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
	}
}

// ManualEntryRequest is an admin-entered, already-approved ledger row
type ManualEntryRequest struct {
	UserID   *uint  `json:"user_id"`                                            // Optional paying/receiving member
	Amount   int64  `json:"amount" binding:"required,gt=0"`                     // Whole rupiah
	Category string `json:"category" binding:"required"`                        // Category label
	Type     string `json:"type" binding:"required,oneof=income expense"`       // income or expense
	Month    int    `json:"month"`                                              // Reporting period for Kas categories
	Year     int    `json:"year"`
}

// ManualEntryHandler inserts an already-approved transaction, bypassing the
// pending queue (cash sponsorships, court rent, cash dues handed over in
// person). A Kas Week category with a member attached settles the dues cell
// exactly like an approval would.
func ManualEntryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ManualEntryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		now := time.Now()
		if req.Month < 1 || req.Month > 12 {
			req.Month = int(now.Month())
		}
		if req.Year == 0 {
			req.Year = now.Year()
		}
		tx := domain.TreasuryTransaction{
			UserID:   req.UserID,
			Amount:   req.Amount,
			Category: req.Category,
			Type:     req.Type,
			Status:   domain.StatusApproved, // No pending stage for manual entries
		}
		err := db.Transaction(func(dtx *gorm.DB) error {
			if err := dtx.Create(&tx).Error; err != nil {
				return err
			}
			if week, isKas := treasury.ParseKasWeek(req.Category); isKas && req.UserID != nil {
				return treasury.SettleWeeklyDue(dtx, *req.UserID, week, req.Month, req.Year, tx.ID)
			}
			return nil
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"amount":   req.Amount,   // Entered amount
				"category": req.Category, // Category label
				"error":    err.Error(),  // Error message
			}).Error("Manual entry failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Manual entry failed"})
			return
		}
		// Log successful manual entry
		logrus.WithFields(logrus.Fields{
			"tx_id":    tx.ID,        // New transaction id
			"amount":   req.Amount,   // Entered amount
			"category": req.Category, // Category label
			"type":     req.Type,     // income or expense
		}).Info("Manual treasury entry")
		_ = utils.DeleteCache(context.Background(), rdb, cacheKeySummary, duesGridKey(req.Month, req.Year))
		c.JSON(http.StatusCreated, gin.H{"id": tx.ID, "status": tx.Status})
	}
}
