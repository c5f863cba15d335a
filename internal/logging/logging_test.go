package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLevel(t *testing.T) {
	l, err := Init("debug", "", false)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.Same(t, l, Get())

	l, err = Init("chatty", "", false)
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}

func TestInitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "meshgrab.log")
	_, err := Init("info", path, false)
	require.NoError(t, err)

	Component("server").Infof("captured %d meshes", 3)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "captured 3 meshes")
	assert.Contains(t, string(data), "component=server")
}
