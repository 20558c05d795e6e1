package prefs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme(" Dark ")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)

	_, err = ParseTheme("sepia")
	assert.Error(t, err)
}

func TestToggle(t *testing.T) {
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeDark, ThemeUnset.Toggle())
}

func TestBoltStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "prefs.db")

	s, err := OpenBolt(path)
	require.NoError(t, err)

	th, err := s.Theme()
	require.NoError(t, err)
	assert.Equal(t, ThemeUnset, th)

	require.NoError(t, s.SetTheme(ThemeLight))
	assert.Error(t, s.SetTheme("sepia"))
	require.NoError(t, s.Close())

	reopened, err := OpenBolt(path)
	require.NoError(t, err)
	defer reopened.Close()

	th, err = reopened.Theme()
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, th)
}

func TestMemoryStoreAndResolve(t *testing.T) {
	m := NewMemoryStore()
	assert.Equal(t, ThemeDark, Resolve(m, ThemeDark))

	require.NoError(t, m.SetTheme(ThemeLight))
	assert.Equal(t, ThemeLight, Resolve(m, ThemeDark))
	assert.Error(t, m.SetTheme(ThemeUnset))

	assert.Equal(t, ThemeDark, Resolve(nil, ThemeDark))
}
