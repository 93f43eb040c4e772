package qr

import (
	"errors"
	"strconv"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// TokenTTL is how long an issued token stays scannable.
const TokenTTL = time.Hour

var (
	ErrMalformed = errors.New("malformed token")
	ErrExpired   = errors.New("expired token")
)

// Token is the self-contained attendance token, wire form
// "<sessionLabel>|<unixEpochMillis>". No server-side state exists for a
// token: expiry is carried in the payload and the only replay guard is the
// daily duplicate check at scan time.
type Token struct {
	Session  string    // Session label the admin issued the code for
	IssuedAt time.Time // Issue instant encoded in the payload
}

// Issue builds the wire form of a token for a session at the given time.
func Issue(session string, now time.Time) string {
	return session + "|" + strconv.FormatInt(now.UnixMilli(), 10)
}

// Parse splits a wire token into its parts. A missing separator, empty label
// or non-numeric timestamp is ErrMalformed.
func Parse(raw string) (Token, error) {
	label, ts, ok := strings.Cut(raw, "|")
	if !ok || label == "" || ts == "" {
		return Token{}, ErrMalformed
	}
	ms, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return Token{}, ErrMalformed
	}
	return Token{Session: label, IssuedAt: time.UnixMilli(ms)}, nil
}

// Validate checks the expiry window against now. Tokens with an issue time in
// the future pass: client clock skew is an accepted risk, only age is checked.
func (t Token) Validate(now time.Time) error {
	if now.Sub(t.IssuedAt) > TokenTTL {
		return ErrExpired
	}
	return nil
}

// ImagePNG renders a wire token as a QR code PNG of the given pixel size.
func ImagePNG(raw string, size int) ([]byte, error) {
	return qrcode.Encode(raw, qrcode.Medium, size)
}
