package qr

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	raw := Issue("Friday Practice", now)
	require.Equal(t, "Friday Practice|"+strconv.FormatInt(now.UnixMilli(), 10), raw)

	tok, err := Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "Friday Practice", tok.Session)
	require.Equal(t, now.UnixMilli(), tok.IssuedAt.UnixMilli())
}

func TestParseMalformed(t *testing.T) {
	cases := []string{
		"",                       // empty
		"Friday Practice",        // no separator
		"|1700000000000",         // empty label
		"Friday Practice|",       // empty timestamp
		"Friday Practice|later",  // non-numeric timestamp
		"Friday Practice|12.5e3", // still non-numeric
	}
	for _, raw := range cases {
		_, err := Parse(raw)
		require.ErrorIs(t, err, ErrMalformed, "input %q", raw)
	}
}

func TestValidateExpiryWindow(t *testing.T) {
	now := time.Now()

	fresh, err := Parse(Issue("Session A", now.Add(-30*time.Minute)))
	require.NoError(t, err)
	require.NoError(t, fresh.Validate(now))

	// Exactly one hour old is still accepted, one millisecond past is not.
	edge, err := Parse(Issue("Session A", now.Add(-TokenTTL)))
	require.NoError(t, err)
	require.NoError(t, edge.Validate(now))

	stale, err := Parse(Issue("Session A", now.Add(-TokenTTL-time.Millisecond)))
	require.NoError(t, err)
	require.ErrorIs(t, stale.Validate(now), ErrExpired)

	// Regardless of how valid the label looks.
	old, err := Parse(Issue("Very Legitimate Session", now.Add(-48*time.Hour)))
	require.NoError(t, err)
	require.ErrorIs(t, old.Validate(now), ErrExpired)
}

func TestValidateFutureTokenAccepted(t *testing.T) {
	now := time.Now()
	tok, err := Parse(Issue("Session A", now.Add(5*time.Minute)))
	require.NoError(t, err)
	require.NoError(t, tok.Validate(now)) // clock skew tolerance, only age rejects
}

func TestImagePNG(t *testing.T) {
	png, err := ImagePNG(Issue("Session A", time.Now()), 256)
	require.NoError(t, err)
	require.NotEmpty(t, png)
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4]) // PNG magic
}
