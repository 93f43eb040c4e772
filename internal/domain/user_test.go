package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecomputeScore(t *testing.T) {
	u := User{Goals: 3, AttitudeScore: 8, AttendanceCount: 12}
	u.RecomputeScore()
	require.Equal(t, 3*10+8+12*5, u.Score)

	// Any accepted mutation of an input must recompute exactly, no drift.
	u.AttendanceCount++
	u.RecomputeScore()
	require.Equal(t, 3*10+8+13*5, u.Score)

	u.Goals = 0
	u.AttitudeScore = 0
	u.AttendanceCount = 0
	u.RecomputeScore()
	require.Zero(t, u.Score)
}
