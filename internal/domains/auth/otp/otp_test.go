package otp_test

import (
	"testing"

	"bms/config"
	"bms/internal/domains/auth/otp"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_Range(t *testing.T) {
	gen := otp.New(42, otp.DefaultMin, otp.DefaultMax)

	for range 10000 {
		code := gen.Generate()

		assert.GreaterOrEqual(t, code, 100000)
		assert.LessOrEqual(t, code, 999999)
	}
}

func TestGenerator_SameSeedSameSequence(t *testing.T) {
	first := otp.New(7, otp.DefaultMin, otp.DefaultMax)
	second := otp.New(7, otp.DefaultMin, otp.DefaultMax)

	for range 100 {
		assert.Equal(t, first.Generate(), second.Generate())
	}
}

func TestGenerator_InvalidRangeFallsBack(t *testing.T) {
	gen := otp.New(1, 10, 5)

	code := gen.Generate()

	assert.GreaterOrEqual(t, code, otp.DefaultMin)
	assert.LessOrEqual(t, code, otp.DefaultMax)
}

func TestNewFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.OTP.Min = 1000
	cfg.OTP.Max = 1001

	gen := otp.NewFromConfig(cfg)

	assert.Contains(t, []int{1000, 1001}, gen.Generate())
}
