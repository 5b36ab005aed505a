// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		keyFile  *string // nil means no file
		override string
		want     string
		wantErr  error
	}{
		{name: "key file is trimmed", keyFile: ptr("  sk-abc123  \n"), want: "sk-abc123"},
		{name: "override wins over file", keyFile: ptr("sk-file"), override: " sk-flag ", want: "sk-flag"},
		{name: "override without file", override: "sk-env", want: "sk-env"},
		{name: "whitespace-only file", keyFile: ptr("   \n\t  "), wantErr: ErrNoAPIKey},
		{name: "missing file", wantErr: ErrNoAPIKey},
		{name: "blank override falls back to file", keyFile: ptr("sk-file"), override: "   ", want: "sk-file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.keyFile != nil {
				writeKey(t, dir, *tt.keyFile)
			}

			got, err := ResolveAPIKey(tt.override, dir)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), filepath.Join(dir, APIKeyName))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveAPIKey_MissingDirectory(t *testing.T) {
	_, err := ResolveAPIKey("", filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestReadKey_DirectoryInPlaceOfFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, APIKeyName), 0o755))

	_, err := ReadKey(dir, APIKeyName)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoAPIKey)

	_, err = ResolveAPIKey("", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading secret")
}

func writeKey(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, APIKeyName), []byte(content), 0o600))
}

func ptr(s string) *string { return &s }
