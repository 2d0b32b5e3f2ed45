package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileMirror_LoadBeforeSave(t *testing.T) {
	m, err := NewFileMirror(t.TempDir())
	require.NoError(t, err)

	_, ok, err := m.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileMirror_SaveThenLoad(t *testing.T) {
	m, err := NewFileMirror(t.TempDir())
	require.NoError(t, err)

	payload := []byte(`{"weeks":[{"week":1}]}`)
	require.NoError(t, m.Save(payload))

	got, ok, err := m.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, payload, got)
}

func TestFileMirror_Overwrite(t *testing.T) {
	m, err := NewFileMirror(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, m.Save([]byte("one")))
	require.NoError(t, m.Save([]byte("two")))

	got, ok, err := m.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("two"), got)
}
