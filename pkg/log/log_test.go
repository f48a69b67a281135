package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/peauc/dcv/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, logrus.WarnLevel, getLogLevel())

	t.Setenv("LOG_LEVEL", "nonsense")
	assert.Equal(t, logrus.DebugLevel, getLogLevel())
}

func TestNewLoggerDebugWritesDevelopmentLog(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	dir := t.TempDir()
	entry := NewLogger(&config.AppConfig{Debug: true, Version: "1.2.3", ConfigDir: dir})

	entry.Info("hello")

	content, err := os.ReadFile(filepath.Join(dir, "development.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"hello"`)
	assert.Contains(t, string(content), `"version":"1.2.3"`)
}

func TestNewLoggerProductionDiscards(t *testing.T) {
	t.Setenv("DEBUG", "")
	dir := t.TempDir()
	entry := NewLogger(&config.AppConfig{ConfigDir: dir})

	entry.Error("hello")

	assert.Equal(t, logrus.ErrorLevel, entry.Logger.GetLevel())
	assert.NoFileExists(t, filepath.Join(dir, "development.log"))
}
