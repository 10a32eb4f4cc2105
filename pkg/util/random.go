package util

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// GenerateRandomNumber generates a random number between min and max (inclusive)
func GenerateRandomNumber(min, max int) int {
	return min + rand.Intn(max-min+1)
}

// RandomDigits returns n random decimal digits, leading zeros kept.
func RandomDigits(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + rand.Intn(10)))
	}
	return b.String()
}

// GeneratePlateNumber issues a business plate number in the form YYYY-NNNNN.
func GeneratePlateNumber(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.Year(), RandomDigits(5))
}

// GenerateBusinessAccountNo issues a business account number in the form BAN-YYYY-NNNNNN.
func GenerateBusinessAccountNo(now time.Time) string {
	return fmt.Sprintf("BAN-%d-%s", now.Year(), RandomDigits(6))
}

// RandomToken returns n lowercase alphanumerics.
func RandomToken(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}
