package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileWritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "chat.log")
	log, err := NewFile(path)
	require.NoError(t, err)

	log.Info("suggestion offered")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"suggestion offered"`)
}

func TestOrNil(t *testing.T) {
	assert.NotNil(t, Or(nil))
}
