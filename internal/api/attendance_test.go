package api

import (
	"net/http"
	"testing"
	"time"

	"futsal_club/internal/domain"
	"futsal_club/internal/qr"

	"github.com/stretchr/testify/require"
)

func TestScanRecordsAttendanceAndRecomputesScore(t *testing.T) {
	db := setupDB(t)
	r, _ := setupRouter(t, db)
	player, token := createUser(t, db, "andi", domain.RoleUser)
	require.NoError(t, db.Model(&player).Updates(map[string]any{"goals": 2, "attitude_score": 5}).Error)

	w := httpDo(r, http.MethodPost, "/attendance/scan", token,
		ScanRequest{Token: qr.Issue("Friday Practice", time.Now())})
	require.Equal(t, http.StatusCreated, w.Code)

	var logs []domain.AttendanceLog
	require.NoError(t, db.Where("user_id = ?", player.ID).Find(&logs).Error)
	require.Len(t, logs, 1)
	require.Equal(t, "Friday Practice", logs[0].SessionName)

	var updated domain.User
	require.NoError(t, db.First(&updated, player.ID).Error)
	require.Equal(t, 1, updated.AttendanceCount)
	require.Equal(t, 2*10+5+1*5, updated.Score) // goals*10 + attitude + attendance*5
}

func TestScanSameSessionSameDayRejected(t *testing.T) {
	db := setupDB(t)
	r, _ := setupRouter(t, db)
	player, token := createUser(t, db, "andi", domain.RoleUser)

	w := httpDo(r, http.MethodPost, "/attendance/scan", token,
		ScanRequest{Token: qr.Issue("Friday Practice", time.Now())})
	require.Equal(t, http.StatusCreated, w.Code)

	// A second scan of the same session today must be rejected, never inserted.
	w = httpDo(r, http.MethodPost, "/attendance/scan", token,
		ScanRequest{Token: qr.Issue("Friday Practice", time.Now())})
	require.Equal(t, http.StatusConflict, w.Code)

	var count int64
	require.NoError(t, db.Model(&domain.AttendanceLog{}).Where("user_id = ?", player.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)

	// The rejected scan must not have bumped the counter or the score.
	var updated domain.User
	require.NoError(t, db.First(&updated, player.ID).Error)
	require.Equal(t, 1, updated.AttendanceCount)
	require.Equal(t, 5, updated.Score)

	// A different session on the same day is a separate check-in.
	w = httpDo(r, http.MethodPost, "/attendance/scan", token,
		ScanRequest{Token: qr.Issue("Evening Match", time.Now())})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestScanExpiredToken(t *testing.T) {
	db := setupDB(t)
	r, _ := setupRouter(t, db)
	player, token := createUser(t, db, "andi", domain.RoleUser)

	stale := qr.Issue("Friday Practice", time.Now().Add(-61*time.Minute))
	w := httpDo(r, http.MethodPost, "/attendance/scan", token, ScanRequest{Token: stale})
	require.Equal(t, http.StatusGone, w.Code)

	var count int64
	require.NoError(t, db.Model(&domain.AttendanceLog{}).Where("user_id = ?", player.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestScanMalformedToken(t *testing.T) {
	db := setupDB(t)
	r, _ := setupRouter(t, db)
	_, token := createUser(t, db, "andi", domain.RoleUser)

	for _, raw := range []string{"no separator", "Friday Practice|not-a-number", "|123"} {
		w := httpDo(r, http.MethodPost, "/attendance/scan", token, ScanRequest{Token: raw})
		require.Equal(t, http.StatusBadRequest, w.Code, "token %q", raw)
	}
}

func TestScanRequiresAuth(t *testing.T) {
	db := setupDB(t)
	r, _ := setupRouter(t, db)

	w := httpDo(r, http.MethodPost, "/attendance/scan", "",
		ScanRequest{Token: qr.Issue("Friday Practice", time.Now())})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
