package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/jpashop/internal/infrastructure/config"
)

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	lg, err := New(config.LogConfig{Level: "info", Format: "json", Output: path, MaxSize: 1}, "release")
	require.NoError(t, err)

	lg.Debug("不应该输出")
	lg.Info("会员注册")
	require.NoError(t, lg.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "会员注册")
	assert.NotContains(t, string(data), "不应该输出")
	assert.Contains(t, string(data), `"level":"INFO"`)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "verbose"}, "debug")
	assert.Error(t, err)
}
