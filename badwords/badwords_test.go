package badwords

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joy095/booking/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("LOG_DIR", os.TempDir())
	logger.InitLoggers()
	os.Exit(m.Run())
}

func TestContainsBadWords(t *testing.T) {
	file := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(file, []byte("scam\nFRAUD\n"), 0o644))
	require.NoError(t, LoadBadWords(file))

	assert.True(t, ContainsBadWords("this hotel is a SCAM"))
	assert.True(t, ContainsBadWords("total fraud, avoid!"))
	assert.False(t, ContainsBadWords("lovely sea view rooms"))
	assert.False(t, ContainsBadWords(""))
}

func TestLoadBadWordsMissingFile(t *testing.T) {
	assert.Error(t, LoadBadWords(filepath.Join(t.TempDir(), "missing.txt")))
}
