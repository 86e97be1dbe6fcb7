package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storedToken struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func TestLoadJSON(t *testing.T) {
	t.Run("loads valid JSON file successfully", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"token":"abc","username":"ada"}`), 0600))

		var got storedToken
		require.NoError(t, LoadJSON(path, &got))
		assert.Equal(t, storedToken{Token: "abc", Username: "ada"}, got)
	})

	t.Run("missing file wraps ErrNotExist", func(t *testing.T) {
		var got storedToken
		err := LoadJSON(filepath.Join(t.TempDir(), "nope.json"), &got)
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("returns error for invalid JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0600))

		var got storedToken
		err := LoadJSON(path, &got)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal")
	})
}

func TestSavePrivateJSON(t *testing.T) {
	t.Run("writes owner-only file that loads back", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "token.json")
		want := storedToken{Token: "xyz", Username: "grace"}

		require.NoError(t, SavePrivateJSON(path, want))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		var got storedToken
		require.NoError(t, LoadJSON(path, &got))
		assert.Equal(t, want, got)
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		require.NoError(t, SavePrivateJSON(path, storedToken{Token: "old"}))
		require.NoError(t, SavePrivateJSON(path, storedToken{Token: "new"}))

		var got storedToken
		require.NoError(t, LoadJSON(path, &got))
		assert.Equal(t, "new", got.Token)
	})

	t.Run("rejects non-serializable data", func(t *testing.T) {
		err := SavePrivateJSON(filepath.Join(t.TempDir(), "x.json"), make(chan int))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to marshal")
	})
}
