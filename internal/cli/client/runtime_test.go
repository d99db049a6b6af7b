package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cloo-solutions/digest/internal/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuntime_ReadsDotEnvThroughConfig(t *testing.T) {
	useTempConfig(t)
	unsetEnv(t, "DIGEST_SENTRY_DSN")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(envUseSampleData+"=true\n"), 0600))
	t.Chdir(dir)

	rt, err := NewRuntime(parsedCmd(t))
	require.NoError(t, err)
	defer rt.Close()

	assert.Equal(t, SourceEnv, rt.Settings.UseSampleDataSource)
	assert.Equal(t, feed.ModeSample, rt.Facade.Mode())
}

func TestNewRuntime_FlagBeatsDotEnv(t *testing.T) {
	useTempConfig(t)
	unsetEnv(t, "DIGEST_SENTRY_DSN")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(envUseSampleData+"=true\n"), 0600))
	t.Chdir(dir)

	rt, err := NewRuntime(parsedCmd(t, "--sample=false"))
	require.NoError(t, err)
	defer rt.Close()

	assert.Equal(t, SourceFlag, rt.Settings.UseSampleDataSource)
	assert.Equal(t, feed.ModeLive, rt.Facade.Mode())
}
