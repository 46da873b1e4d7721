package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantLevel logrus.Level
		wantErr   bool
	}{
		{name: "defaults", cfg: Config{}, wantLevel: logrus.InfoLevel},
		{name: "debug text", cfg: Config{Level: "debug", Format: "text"}, wantLevel: logrus.DebugLevel},
		{name: "warn json", cfg: Config{Level: "warn", Format: "json"}, wantLevel: logrus.WarnLevel},
		{name: "uppercase level accepted", cfg: Config{Level: "ERROR"}, wantLevel: logrus.ErrorLevel},
		{name: "invalid level", cfg: Config{Level: "loud"}, wantErr: true},
		{name: "invalid format", cfg: Config{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, logger.GetLevel())
		})
	}
}

func TestWithComponent(t *testing.T) {
	logger, err := NewLogger(Config{})
	require.NoError(t, err)

	entry := WithComponent(logger, "sync_engine")
	assert.Equal(t, "sync_engine", entry.Data[FieldComponent])
}
