package credential

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(4)

	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, h.Verify("s3cret-pass", hash))
	assert.False(t, h.Verify("wrong-pass", hash))
}

func TestPasswordHasher_VerifyFailsClosed(t *testing.T) {
	h := NewPasswordHasher(4)

	assert.False(t, h.Verify("anything", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("anything", ""))
	assert.False(t, h.Verify("", "$2a$04$abcdefghijklmnopqrstuu"))
}

func TestPasswordHasher_EmptyPassword(t *testing.T) {
	_, err := NewPasswordHasher(4).Hash("")
	require.ErrorIs(t, err, ErrEmptyPassword)
}

func TestNewPasswordHasher_InvalidCostFallsBack(t *testing.T) {
	assert.Equal(t, DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, DefaultCost, NewPasswordHasher(99).cost)
	assert.Equal(t, 12, NewPasswordHasher(12).cost)
}

func TestGenerateOTP_SixDigits(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestHashOTP_Compare(t *testing.T) {
	hash := HashOTP("123456")

	assert.Len(t, hash, 64)
	assert.NotContains(t, hash, "123456")
	assert.Equal(t, hash, HashOTP("123456"))

	assert.True(t, CompareOTP("123456", hash))
	assert.False(t, CompareOTP("123457", hash))
	assert.False(t, CompareOTP(" 123456", hash))
	assert.False(t, CompareOTP("123456", ""))
}
