// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdeaIsEmpty(t *testing.T) {
	assert.True(t, Idea{}.IsEmpty())
	assert.False(t, Idea{Title: "t"}.IsEmpty())
	assert.False(t, Idea{Description: "d"}.IsEmpty())
	assert.False(t, ErrorIdea.IsEmpty())
}

func TestSavedIdeaDisplayTitle(t *testing.T) {
	assert.Equal(t, "Untitled Idea", SavedIdea{}.DisplayTitle())
	assert.Equal(t, "Target Snack Run", SavedIdea{Title: "Target Snack Run"}.DisplayTitle())
}

func TestAppConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *AppConfig)
		errMsg string
	}{
		{name: "defaults are valid", mutate: func(*AppConfig) {}},
		{
			name:   "missing model",
			mutate: func(c *AppConfig) { c.Generator.Model = "" },
			errMsg: "model is required",
		},
		{
			name:   "relative endpoint",
			mutate: func(c *AppConfig) { c.Generator.Endpoint = "v1/chat" },
			errMsg: "endpoint must be a valid URL",
		},
		{
			name:   "negative recency size",
			mutate: func(c *AppConfig) { c.Generator.RecencySize = -1 },
			errMsg: "recencysize fails gt=0",
		},
		{
			name: "several problems reported together",
			mutate: func(c *AppConfig) {
				c.Generator.MaxTokens = 0
				c.Store.DataDir = ""
			},
			errMsg: "; ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultAppConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
