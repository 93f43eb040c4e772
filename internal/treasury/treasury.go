package treasury

import (
	"regexp"
	"strconv"

	"futsal_club/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kasWeekRE captures the week number of the dues category convention
// "Kas Week <N>".
var kasWeekRE = regexp.MustCompile(`^Kas Week (\d+)$`)

// ParseKasWeek reports whether a transaction category is a weekly dues
// payment, and for which week. Only weeks 1..4 are valid; any other category
// ("Sponsor", "Court Rent", ...) carries no dues side effect.
func ParseKasWeek(category string) (int, bool) {
	m := kasWeekRE.FindStringSubmatch(category)
	if m == nil {
		return 0, false
	}
	week, err := strconv.Atoi(m[1])
	if err != nil || week < 1 || week > 4 {
		return 0, false
	}
	return week, true
}

// SettleWeeklyDue marks a (user, week, month, year) cell paid, back-referencing
// the approved transaction. The composite unique key makes a repeat approval
// an overwrite rather than a duplicate row.
func SettleWeeklyDue(db *gorm.DB, userID uint, week, month, year int, txID uint) error {
	due := domain.WeeklyDue{
		UserID:        userID,
		WeekNumber:    week,
		MonthNumber:   month,
		Year:          year,
		IsPaid:        true,
		TransactionID: &txID,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_number"}, {Name: "month_number"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_paid", "transaction_id"}),
	}).Create(&due).Error
}

// Summary aggregates the ledger over approved rows only. Pending rows never
// contribute, whatever their amounts.
func Summary(db *gorm.DB) (totalIncome, totalExpense int64, err error) {
	if err = db.Model(&domain.TreasuryTransaction{}).
		Where("status = ? AND type = ?", domain.StatusApproved, domain.TxIncome).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalIncome).Error; err != nil {
		return 0, 0, err
	}
	if err = db.Model(&domain.TreasuryTransaction{}).
		Where("status = ? AND type = ?", domain.StatusApproved, domain.TxExpense).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalExpense).Error; err != nil {
		return 0, 0, err
	}
	return totalIncome, totalExpense, nil
}

// PlayerDues is one reconciliation grid row: a player and four paid/unpaid
// checkmarks for the selected period.
type PlayerDues struct {
	UserID       uint    `json:"user_id"`
	FullName     string  `json:"full_name"`
	JerseyNumber int     `json:"jersey_number"`
	Weeks        [4]bool `json:"weeks"` // index 0 = week 1
}

// DuesGrid projects the players x weeks matrix for one (month, year). A cell
// is paid iff a WeeklyDue row with is_paid exists for that exact period; other
// months never bleed in.
func DuesGrid(db *gorm.DB, month, year int) ([]PlayerDues, error) {
	var players []domain.User
	if err := db.Where("role = ?", domain.RoleUser).Order("full_name asc").Find(&players).Error; err != nil {
		return nil, err
	}
	var dues []domain.WeeklyDue
	if err := db.Where("month_number = ? AND year = ? AND is_paid = ?", month, year, true).Find(&dues).Error; err != nil {
		return nil, err
	}
	paid := make(map[uint][4]bool, len(players))
	for _, d := range dues {
		if d.WeekNumber < 1 || d.WeekNumber > 4 {
			continue
		}
		weeks := paid[d.UserID]
		weeks[d.WeekNumber-1] = true
		paid[d.UserID] = weeks
	}
	grid := make([]PlayerDues, len(players))
	for i, p := range players {
		grid[i] = PlayerDues{UserID: p.ID, FullName: p.FullName, JerseyNumber: p.JerseyNumber, Weeks: paid[p.ID]}
	}
	return grid, nil
}
