package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2024, 6, 1, 8, 30, 0, 0, time.Local),
		Level:   logrus.WarnLevel,
		Message: "新闻搜索失败",
		Data:    logrus.Fields{"term": "Acme", "attempt": 2},
	}

	out, err := (&CustomFormatter{}).Format(entry)

	require.NoError(t, err)
	assert.Equal(t, "[2024-06-01 08:30:00] [WARN] [] 新闻搜索失败 attempt=2 term=Acme\n", string(out))
}

func TestInitLogger_WritesFile(t *testing.T) {
	old := Log
	t.Cleanup(func() { Log = old })

	path := filepath.Join(t.TempDir(), "logs", "research.log")
	require.NoError(t, InitLogger("debug", path))
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())

	Log.Debug("hello")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "[DEBU]"))
	assert.Contains(t, string(data), "logger_test.go:")
}

func TestInitLogger_BadLevel(t *testing.T) {
	old := Log
	t.Cleanup(func() { Log = old })

	require.NoError(t, InitLogger("verbose", ""))
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}
