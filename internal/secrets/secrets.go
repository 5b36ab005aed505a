// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets supplies the text-generation API bearer token. The token
// comes from an explicit override (flag or environment) or from the file
// <dir>/openai-api-key; it is never compiled into the binary.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// APIKeyName is the file holding the API bearer token.
const APIKeyName = "openai-api-key"

// ErrNoAPIKey is returned when neither the override nor the key file
// supplies a token.
var ErrNoAPIKey = errors.New("no API key configured")

// ReadKey returns the trimmed contents of dir/name. A missing or blank
// file yields "" with no error; any other read failure is returned.
func ReadKey(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading secret %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ResolveAPIKey picks the API key: a non-blank override wins, otherwise the
// key file in dir is read. The key file is not touched when an override is set.
func ResolveAPIKey(override, dir string) (string, error) {
	if v := strings.TrimSpace(override); v != "" {
		return v, nil
	}
	key, err := ReadKey(dir, APIKeyName)
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", fmt.Errorf("%w: write it to %s or pass --api-key / IDEA_SWIPE_API_KEY",
			ErrNoAPIKey, filepath.Join(dir, APIKeyName))
	}
	return key, nil
}
