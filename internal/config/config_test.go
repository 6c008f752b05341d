package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	c, err := Decode(v)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:5350", c.GetHTTPAddr())
	assert.False(t, c.IsH2CEnabled())
	assert.False(t, c.IsAuthEnabled())
	assert.Equal(t, "X", c.Cipher.DefaultFiller)
	assert.Equal(t, 4, c.Cipher.BatchConcurrency)
	assert.Empty(t, c.Cipher.Presets)
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server": {"port": 8080, "enable_h2c": true},
		"auth": {"jwt_secret": "s3cret"},
		"cipher": {
			"presets": {
				"Field-Hill": {"cipher": "hill", "describe": "3x3 field key", "params": {"key": "gybnqkurp", "filler": "Z"}},
				"broken": {"describe": "no cipher"},
				"scalar": 3
			}
		}
	}`), 0o600))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	c, err := Decode(v)
	require.NoError(t, err)
	assert.Equal(t, 8080, c.Server.Port)
	assert.True(t, c.IsH2CEnabled())
	assert.True(t, c.IsAuthEnabled())
	assert.Equal(t, 10, c.Cache.Expiration)

	require.Len(t, c.Cipher.Presets, 1)
	p, ok := c.Preset("FIELD-HILL")
	require.True(t, ok)
	assert.Equal(t, "hill", p.Cipher)
	assert.Equal(t, "gybnqkurp", p.Params["key"])
	assert.Equal(t, "Z", p.Params["filler"])
}

func TestParsePresets(t *testing.T) {
	got := ParsePresets(map[string]interface{}{
		"caesar3": map[string]interface{}{"cipher": "caesar", "params": map[interface{}]interface{}{"shift": 3}},
	})
	require.Contains(t, got, "caesar3")
	assert.Equal(t, 3, got["caesar3"].Params["shift"])

	assert.Empty(t, ParsePresets(nil))
	assert.Empty(t, ParsePresets([]interface{}{"x"}))
}
