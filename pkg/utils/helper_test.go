package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 10, ParseInt("0", 10))
	assert.Equal(t, 10, ParseInt("-3", 10))
}

func TestGenerateBookingCode(t *testing.T) {
	code := GenerateBookingCode("TRV")

	parts := strings.Split(code, "-")
	assert.Len(t, parts, 3)
	assert.Equal(t, "TRV", parts[0])
	assert.Equal(t, time.Now().Format("20060102"), parts[1])
	assert.Len(t, parts[2], 6)

	// Ambiguous characters are excluded from the random segment.
	assert.NotContains(t, parts[2], "O")
	assert.NotContains(t, parts[2], "0")
	assert.NotContains(t, parts[2], "I")
	assert.NotContains(t, parts[2], "1")
}

func TestGenerateBookingCode_DefaultPrefix(t *testing.T) {
	code := GenerateBookingCode("")
	assert.True(t, strings.HasPrefix(code, "TRV-"))
}

func TestGenerateOrderID(t *testing.T) {
	code := "TRV-20260901-ABCDEF"
	orderID := GenerateOrderID(code)

	assert.True(t, strings.HasPrefix(orderID, code+"-"))

	// A retried checkout mints a different order id.
	assert.NotEqual(t, orderID, GenerateOrderID(code))
}
