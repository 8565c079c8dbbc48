package utils

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var (
	phonePattern   = regexp.MustCompile(`^[0-9]{10}$`)
	aadhaarPattern = regexp.MustCompile(`^[0-9]{12}$`)
)

// HashPassword hashes a plain password using bcrypt with the given cost.
// Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPasswordHash compares a plain password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsPhone returns true if s is a 10-digit phone number.
func IsPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// IsAadhaar returns true if s is a 12-digit aadhaar number.
func IsAadhaar(s string) bool {
	return aadhaarPattern.MatchString(s)
}
