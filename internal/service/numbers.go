package service

import "strings"

// numberAttempts bounds retries when a generated document number races
// a concurrent writer onto the same unique index.
const numberAttempts = 3

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
