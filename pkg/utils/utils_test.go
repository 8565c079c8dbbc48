package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	password := "testpassword"
	hashedPassword, err := HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEmpty(t, hashedPassword)
	assert.NotEqual(t, password, hashedPassword)

	cost, err := bcrypt.Cost([]byte(hashedPassword))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	// out of range cost falls back to the default
	hashedPassword, err = HashPassword(password, 99)
	require.NoError(t, err)
	cost, err = bcrypt.Cost([]byte(hashedPassword))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestCheckPasswordHash(t *testing.T) {
	password := "testpassword"
	hashedPassword, _ := HashPassword(password, bcrypt.MinCost)

	assert.True(t, CheckPasswordHash(password, hashedPassword))
	assert.False(t, CheckPasswordHash("wrongpassword", hashedPassword))
	assert.False(t, CheckPasswordHash(password, "not-a-hash"))
}

func TestIsPhoneAndAadhaar(t *testing.T) {
	assert.True(t, IsPhone("9876543210"))
	assert.False(t, IsPhone("98765"))
	assert.False(t, IsPhone("98765432ab"))

	assert.True(t, IsAadhaar("123412341234"))
	assert.False(t, IsAadhaar("1234"))
}
