package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		code, err := GenerateOTP(length)
		require.NoError(t, err)
		assert.Len(t, code, length)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "OTP must be numeric, got %q", code)
		}
	}

	// Below-minimum lengths are padded up to four digits.
	code, err := GenerateOTP(1)
	require.NoError(t, err)
	assert.Len(t, code, 4)
}

func TestMaskPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9876543210", "******3210"},
		{"1234", "1234"},
		{"", ""},
		{"+919876543210", "*********3210"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskPhone(tt.in))
	}
}
