package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// randomCode returns length chars from an alphabet without easily confused
// characters (no I/O/0/1).
func randomCode(length int) string {
	max := big.NewInt(int64(len(codeAlphabet)))
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			panic(fmt.Sprintf("read random: %v", err))
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code)
}

// GenerateBookingCode creates a human-shareable unique booking code.
// Format: PREFIX-YYYYMMDD-XXXXXX
func GenerateBookingCode(prefix string) string {
	if prefix == "" {
		prefix = "TRV"
	}
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), randomCode(6))
}

// GenerateOrderID derives a collision-resistant external order identifier
// from the booking code. A fresh one is minted per payment initiation so a
// retried checkout never reuses a prior order id.
func GenerateOrderID(bookingCode string) string {
	return fmt.Sprintf("%s-%d-%s", bookingCode, time.Now().Unix(), randomCode(4))
}
