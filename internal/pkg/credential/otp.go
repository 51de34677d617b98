package credential

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"math/big"
	"strconv"
)

const (
	otpMin   = 100000
	otpRange = 900000
)

// GenerateOTP returns a 6-digit code drawn uniformly from [100000, 999999].
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpRange))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+otpMin, 10), nil
}

// HashOTP is a fast digest. OTPs are short-lived, so expiry rather than
// hash cost bounds guessing.
func HashOTP(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func CompareOTP(code, hash string) bool {
	if hash == "" {
		return false
	}
	got := HashOTP(code)
	return subtle.ConstantTimeCompare([]byte(got), []byte(hash)) == 1
}
