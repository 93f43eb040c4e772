package treasury

import (
	"fmt"
	"testing"

	"futsal_club/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Per-test in-memory database to avoid cross-test interference
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.TreasuryTransaction{}, &domain.WeeklyDue{}))
	return db
}

func TestParseKasWeek(t *testing.T) {
	cases := []struct {
		category string
		week     int
		ok       bool
	}{
		{"Kas Week 1", 1, true},
		{"Kas Week 2", 2, true},
		{"Kas Week 4", 4, true},
		{"Kas Week 5", 0, false}, // only weeks 1..4 exist
		{"Kas Week 0", 0, false},
		{"kas week 2", 0, false}, // convention is exact
		{"Kas Week 2 ", 0, false},
		{"Sponsor", 0, false},
		{"Court Rent", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		week, ok := ParseKasWeek(tc.category)
		require.Equal(t, tc.ok, ok, "category %q", tc.category)
		require.Equal(t, tc.week, week, "category %q", tc.category)
	}
}

func TestSummaryCountsApprovedOnly(t *testing.T) {
	db := setupDB(t)
	uid := uint(7)
	rows := []domain.TreasuryTransaction{
		{UserID: &uid, Amount: 25000, Category: "Kas Week 1", Type: domain.TxIncome, Status: domain.StatusApproved},
		{UserID: &uid, Amount: 500000, Category: "Sponsor", Type: domain.TxIncome, Status: domain.StatusApproved},
		{UserID: &uid, Amount: 999999, Category: "Kas Week 2", Type: domain.TxIncome, Status: domain.StatusPending}, // must not count
		{Amount: 150000, Category: "Court Rent", Type: domain.TxExpense, Status: domain.StatusApproved},
		{Amount: 888888, Category: "Jerseys", Type: domain.TxExpense, Status: domain.StatusPending}, // must not count
	}
	require.NoError(t, db.Create(&rows).Error)

	income, expense, err := Summary(db)
	require.NoError(t, err)
	require.Equal(t, int64(525000), income)
	require.Equal(t, int64(150000), expense)

	// Deleting an approved row removes it from the aggregates entirely.
	require.NoError(t, db.Delete(&domain.TreasuryTransaction{}, rows[1].ID).Error)
	income, expense, err = Summary(db)
	require.NoError(t, err)
	require.Equal(t, int64(25000), income)
	require.Equal(t, int64(150000), expense)
}

func TestSummaryEmptyLedger(t *testing.T) {
	db := setupDB(t)
	income, expense, err := Summary(db)
	require.NoError(t, err)
	require.Zero(t, income)
	require.Zero(t, expense)
}

func TestSettleWeeklyDueUpsert(t *testing.T) {
	db := setupDB(t)

	require.NoError(t, SettleWeeklyDue(db, 3, 2, 3, 2026, 10))

	var due domain.WeeklyDue
	require.NoError(t, db.Where("user_id = ? AND week_number = ? AND month_number = ? AND year = ?", 3, 2, 3, 2026).First(&due).Error)
	require.True(t, due.IsPaid)
	require.NotNil(t, due.TransactionID)
	require.Equal(t, uint(10), *due.TransactionID)

	// Settling the same cell again (double-tap, resubmission) overwrites
	// instead of duplicating.
	require.NoError(t, SettleWeeklyDue(db, 3, 2, 3, 2026, 11))
	var count int64
	require.NoError(t, db.Model(&domain.WeeklyDue{}).Where("user_id = ?", 3).Count(&count).Error)
	require.Equal(t, int64(1), count)
	require.NoError(t, db.Where("user_id = ?", 3).First(&due).Error)
	require.Equal(t, uint(11), *due.TransactionID)
}

func TestDuesGridIsPeriodScoped(t *testing.T) {
	db := setupDB(t)
	players := []domain.User{
		{Username: "andi", Password: "x", Role: domain.RoleUser, FullName: "Andi", JerseyNumber: 7},
		{Username: "budi", Password: "x", Role: domain.RoleUser, FullName: "Budi", JerseyNumber: 10},
		{Username: "coach", Password: "x", Role: domain.RoleAdmin, FullName: "Coach"}, // admins are not grid rows
	}
	require.NoError(t, db.Create(&players).Error)

	require.NoError(t, SettleWeeklyDue(db, players[0].ID, 2, 3, 2026, 1))
	require.NoError(t, SettleWeeklyDue(db, players[0].ID, 2, 4, 2026, 2)) // different month, must not bleed in

	grid, err := DuesGrid(db, 3, 2026)
	require.NoError(t, err)
	require.Len(t, grid, 2)
	require.Equal(t, "Andi", grid[0].FullName)
	require.Equal(t, [4]bool{false, true, false, false}, grid[0].Weeks)
	require.Equal(t, [4]bool{}, grid[1].Weeks)

	// The other period shows its own cell only.
	grid, err = DuesGrid(db, 4, 2026)
	require.NoError(t, err)
	require.Equal(t, [4]bool{false, true, false, false}, grid[0].Weeks)

	grid, err = DuesGrid(db, 5, 2026)
	require.NoError(t, err)
	require.Equal(t, [4]bool{}, grid[0].Weeks)
}
