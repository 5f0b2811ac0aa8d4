package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"regexp"
	"strings"
)

const (
	confirmationCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// ConfirmationCodeLength gives 36^10 possible codes.
	ConfirmationCodeLength = 10
)

var nonAlnum = regexp.MustCompile(`[^A-Z0-9]`)

// GenerateConfirmationCode returns n characters from A-Z0-9 drawn with
// crypto/rand; rand.Int avoids modulo bias.
func GenerateConfirmationCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	sb.Grow(n)
	alphaLen := big.NewInt(int64(len(confirmationCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(confirmationCharset[num.Int64()])
	}
	return sb.String(), nil
}

// NormalizeConfirmationCode upper-cases the code and strips separators such as "-" or spaces.
func NormalizeConfirmationCode(code string) string {
	return nonAlnum.ReplaceAllString(strings.ToUpper(strings.TrimSpace(code)), "")
}
