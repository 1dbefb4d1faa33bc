// Package site loads the Jekyll site configuration that a post is rendered with
package site

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ErrMissingKey is returned when a required key is absent from the site config
var ErrMissingKey = errors.New("missing required key in site config")

// Config holds the values substituted into posts before publishing
type Config struct {
	TwitterUsername string
	TwitterURL      string
	SubscribeURL    string

	v *viper.Viper
}

// keys that must be present for a post to be transformed
var requiredKeys = []string{
	"twitter.username",
	"twitter_url",
	"subscribe_url",
}

// Load reads a site config from a YAML file such as _config.yml
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading site config: %w", err)
	}
	return FromViper(v)
}

// FromViper builds a config from an already populated viper instance
func FromViper(v *viper.Viper) (*Config, error) {
	for _, key := range requiredKeys {
		if !v.IsSet(key) {
			return nil, fmt.Errorf("%w: %s", ErrMissingKey, key)
		}
	}

	return &Config{
		TwitterUsername: v.GetString("twitter.username"),
		TwitterURL:      v.GetString("twitter_url"),
		SubscribeURL:    v.GetString("subscribe_url"),
		v:               v,
	}, nil
}

// Get looks up an arbitrary, possibly nested, key such as "twitter.username"
func (c *Config) Get(key string) any {
	if c.v == nil {
		return nil
	}
	return c.v.Get(key)
}
