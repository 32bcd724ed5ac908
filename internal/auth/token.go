package auth

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

const joinTokenBytes = 24

// GenerateInterviewToken produces a cryptographically random, URL-safe join
// token with no embedded structure. Each token is bound to a single interview
// at scheduling time and never reused.
func GenerateInterviewToken() (string, error) {
	buf := make([]byte, joinTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GenerateTokenExpiry returns the join token expiry instant, always in UTC.
func GenerateTokenExpiry(hours int) time.Time {
	return time.Now().UTC().Add(time.Duration(hours) * time.Hour)
}

// IsTokenExpired reports whether a join token expiry has passed. A nil expiry
// counts as expired. Naive timestamps read back from the database are treated
// as UTC before comparison.
func IsTokenExpired(expiry *time.Time) bool {
	if expiry == nil {
		return true
	}
	e := *expiry
	if e.Location() != time.UTC {
		// timestamp columns come back without zone info; their wall clock is UTC
		e = time.Date(e.Year(), e.Month(), e.Day(), e.Hour(), e.Minute(), e.Second(), e.Nanosecond(), time.UTC)
	}
	return time.Now().UTC().After(e)
}
