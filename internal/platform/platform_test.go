package platform

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)

	configDir, err := NewService().GetConfigDir()

	require.NoError(t, err)
	assert.NotEmpty(t, configDir)
}

func TestSingleInstanceGuard(t *testing.T) {
	appName := "devtime-test-" + t.Name()

	guard, err := AcquireSingleInstance(appName)
	require.NoError(t, err)
	defer func() {
		_ = guard.Release()
	}()
	assert.NotEmpty(t, guard.Address())

	_, err = AcquireSingleInstance(appName)
	assert.True(t, errors.Is(err, ErrAlreadyRunning))

	require.NoError(t, guard.Release())
	again, err := AcquireSingleInstance(appName)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestSecondLaunchActivatesRunningInstance(t *testing.T) {
	appName := "devtime-test-" + t.Name()
	guard, err := AcquireSingleInstance(appName)
	require.NoError(t, err)
	defer func() {
		_ = guard.Release()
	}()

	activated := make(chan struct{}, 1)
	guard.OnActivate(func() {
		activated <- struct{}{}
	})

	_, err = AcquireSingleInstance(appName)
	require.ErrorIs(t, err, ErrAlreadyRunning)

	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("running instance was not activated")
	}
}

func TestPortFromNameIsStableAndInRange(t *testing.T) {
	port := portFromName("DevTime Tracker")

	assert.Equal(t, port, portFromName("DevTime Tracker"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}

func TestReleaseNilGuard(t *testing.T) {
	var guard *InstanceGuard

	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
}
