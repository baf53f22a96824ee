package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{PortKey, SessionIDKey, SessionTTLKey, NoticeTTLKey, LogLevelKey, EventsSNSArnKey} {
		t.Setenv(k, "")
	}
	s := FromEnv()
	assert.Equal(t, DefaultPort, s.Port)
	assert.Equal(t, DefaultSessionTTL, s.SessionTTL)
	assert.Equal(t, DefaultNoticeTTL, s.NoticeTTL)
	assert.Equal(t, log.InfoLevel, s.LogLevel)
	assert.Len(t, s.SessionID, 36)
	assert.Empty(t, s.EventsSNSArn)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv(PortKey, "9090")
	t.Setenv(SessionIDKey, "front-desk")
	t.Setenv(SessionTTLKey, "30m")
	t.Setenv(NoticeTTLKey, "500ms")
	t.Setenv(LogLevelKey, "debug")
	s := FromEnv()
	assert.Equal(t, 9090, s.Port)
	assert.Equal(t, "front-desk", s.SessionID)
	assert.Equal(t, 30*time.Minute, s.SessionTTL)
	assert.Equal(t, 500*time.Millisecond, s.NoticeTTL)
	assert.Equal(t, log.DebugLevel, s.LogLevel)
}

func TestFromEnvBadValuesFallBack(t *testing.T) {
	t.Setenv(PortKey, "-1")
	t.Setenv(SessionTTLKey, "forever")
	t.Setenv(LogLevelKey, "loud")
	s := FromEnv()
	assert.Equal(t, DefaultPort, s.Port)
	assert.Equal(t, DefaultSessionTTL, s.SessionTTL)
	assert.Equal(t, log.InfoLevel, s.LogLevel)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CLIENTREG_TEST_FROM_FILE=yes\n"), 0o600))
	t.Setenv(EnvFileKey, path)
	t.Cleanup(func() { _ = os.Unsetenv("CLIENTREG_TEST_FROM_FILE") })

	LoadEnvFile()
	assert.Equal(t, "yes", os.Getenv("CLIENTREG_TEST_FROM_FILE"))
}
