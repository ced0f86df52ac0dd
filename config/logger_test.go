package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		environment string
		wantLevel   zapcore.Level
		wantErr     bool
	}{
		{name: "development debug", level: "debug", environment: "development", wantLevel: zapcore.DebugLevel},
		{name: "production info", level: "info", environment: "production", wantLevel: zapcore.InfoLevel},
		{name: "warn", level: "warn", environment: "test", wantLevel: zapcore.WarnLevel},
		{name: "invalid level", level: "loud", environment: "development", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(LogConfig{Level: tt.level}, tt.environment)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, logger.Level())
		})
	}
}
