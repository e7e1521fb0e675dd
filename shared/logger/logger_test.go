package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"bms/config"
	"bms/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInitLogger(t *testing.T) {
	original := log.Logger
	defer func() { log.Logger = original }()

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	original := log.Logger
	defer func() { log.Logger = original }()

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("booking insert failed"))

	assert.Contains(t, buf.String(), "booking insert failed")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestSetLogLevel(t *testing.T) {
	original := log.Logger
	defer func() {
		log.Logger = original
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}()

	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{level: "debug", expected: zerolog.DebugLevel},
		{level: "warn", expected: zerolog.WarnLevel},
		{level: "", expected: zerolog.TraceLevel},
		{level: "verbose", expected: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.level

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}
