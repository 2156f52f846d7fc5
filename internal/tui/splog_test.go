package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplogConsole(t *testing.T) {
	t.Setenv("DEBUG", "")

	var buf bytes.Buffer
	splog := NewSplogWithWriter(&buf)

	splog.Info("Create release branch %s", "minor/1.x")
	splog.Debug("hidden")
	splog.Warn("careful")
	splog.Error("failed")
	splog.Tip("rebase %s", "PRJ-1")

	require.Equal(t, "Create release branch minor/1.x\n⚠️  careful\n❌ failed\n💡 rebase PRJ-1\n", buf.String())

	buf.Reset()
	splog.SetDebug(true)
	splog.Debug("visible %d", 1)
	require.Equal(t, "visible 1\n", buf.String())

	buf.Reset()
	splog.SetQuiet(true)
	splog.Info("nothing")
	splog.Warn("nothing either")
	require.Empty(t, buf.String())

	splog.SetQuiet(false)
	splog.Info("back")
	require.Equal(t, "back\n", buf.String())
}

func TestSplogMessagesWithoutArgsAreLiteral(t *testing.T) {
	var buf bytes.Buffer
	splog := NewSplogWithWriter(&buf)

	splog.Info("100% done")
	require.Equal(t, "100% done\n", buf.String())
}

func TestSplogLogFile(t *testing.T) {
	t.Setenv("DEBUG", "")

	var buf bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "logs", "bbt.log")
	splog, err := NewSplogWithConfig(&buf, logPath)
	require.NoError(t, err)

	run := splog.With("run", "abc123")
	run.Info("Tagged release candidate %s", "1.0.0-1")
	run.Debug("only in the file")
	require.NoError(t, splog.Close())

	require.Equal(t, "Tagged release candidate 1.0.0-1\n", buf.String())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), `msg="Tagged release candidate 1.0.0-1"`)
	require.Contains(t, string(data), "run=abc123")
	require.Contains(t, string(data), `msg="only in the file"`)
	require.Contains(t, string(data), "level=DEBUG")
}

func TestCreateLumberjackLoggerFromEnv(t *testing.T) {
	t.Setenv("BBT_LOG_MAX_SIZE", "20")
	t.Setenv("BBT_LOG_MAX_BACKUPS", "0")
	t.Setenv("BBT_LOG_MAX_AGE", "invalid")

	logger := createLumberjackLogger("/tmp/bbt.log")
	require.Equal(t, 20, logger.MaxSize)
	require.Equal(t, 0, logger.MaxBackups)
	require.Equal(t, 90, logger.MaxAge)
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv("BBT_LOG_FILE", "/var/log/custom.log")
	require.Equal(t, "/var/log/custom.log", GetLogFilePath())

	t.Setenv("BBT_LOG_FILE", "")
	require.Equal(t, "bbt.log", filepath.Base(GetLogFilePath()))
}
