package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Document numbers are human-readable codes with a random suffix, not DB
// sequences: quotes are Q{YY}{MM}-{NNNN}, work orders WO{YY}{MM}{DD}-{NNN}.
// Collisions are possible, so creators retry on a duplicate-key error.

const numberMaxAttempts = 5

func newQuoteNumber(now time.Time) string {
	return fmt.Sprintf("Q%02d%02d-%04d", now.Year()%100, int(now.Month()), rand.Intn(10000))
}

func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("WO%02d%02d%02d-%03d", now.Year()%100, int(now.Month()), now.Day(), rand.Intn(1000))
}

// isDuplicateKeyError matches unique-constraint violations across the
// Postgres and sqlite drivers
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique failed")
}
