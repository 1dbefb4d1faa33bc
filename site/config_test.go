package site

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jekyllConfig = `
title: Late Night Swift
url: https://www.latenightswift.com
twitter:
  username: latenightswift
twitter_url: https://twitter.com/latenightswift
subscribe_url: https://sub.example.com
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "_config.yml")
	require.NoError(t, os.WriteFile(path, []byte(jekyllConfig), 0666))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "latenightswift", cfg.TwitterUsername)
	assert.Equal(t, "https://twitter.com/latenightswift", cfg.TwitterURL)
	assert.Equal(t, "https://sub.example.com", cfg.SubscribeURL)
	assert.Equal(t, "Late Night Swift", cfg.Get("title"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestMissingKey(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString("twitter:\n  username: foo\ntwitter_url: https://x.com/foo\n")))

	_, err := FromViper(v)
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Contains(t, err.Error(), "subscribe_url")
}
