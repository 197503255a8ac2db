package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+919876543210"))
	assert.True(t, ValidatePhone("9876543210"))
	assert.True(t, ValidatePhone("+1 (555) 867-5309"))

	assert.False(t, ValidatePhone(""))
	assert.False(t, ValidatePhone("abc"))
	assert.False(t, ValidatePhone("0123456789")) // leading zero
}

func TestValidatePin(t *testing.T) {
	assert.True(t, ValidatePin("110001"))
	assert.False(t, ValidatePin("011000")) // leading zero
	assert.False(t, ValidatePin("1234"))
	assert.False(t, ValidatePin("12345a"))
}

func TestGenerateOTP(t *testing.T) {
	code := GenerateOTP(6)
	assert.Len(t, code, 6)
	for _, ch := range code {
		assert.True(t, ch >= '0' && ch <= '9')
	}
}

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(8)
	assert.Len(t, s, 8)
	assert.NotEqual(t, s, GenerateRandomString(8))
}
