package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoggingFile(t *testing.T) {
	dir := t.TempDir()
	date := time.Now().Format("2006-01-02")

	f, err := GetLoggingFile(filepath.Join(dir, "assethub.log"))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "assethub-"+date+".log", filepath.Base(f.Name()))

	g, err := GetLoggingFile(filepath.Join(dir, "assethub"))
	require.NoError(t, err)
	defer g.Close()
	assert.Equal(t, "assethub-"+date+".log", filepath.Base(g.Name()))
}

func TestLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	logger := Logger(path)
	logger.Info("asset created")

	written := strings.TrimSuffix(path, ".log") + "-" + time.Now().Format("2006-01-02") + ".log"
	content, err := os.ReadFile(written)
	require.NoError(t, err)
	assert.Contains(t, string(content), "asset created")
}
