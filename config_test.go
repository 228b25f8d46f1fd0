package ringtext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	file := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	return file
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	l, err := cfg.Levels()
	require.NoError(t, err)
	c, ok := l.Color(4)
	assert.True(t, ok)
	assert.Equal(t, uint16(0xffff), uint16(c))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]struct {
		content string
		want    func(*Config)
		err     bool
	}{
		"empty": {
			want: func(*Config) {},
		},
		"partial": {
			content: `
[display]
width = 240
height = 240

[color]
tint = "#00FF00"
`,
			want: func(c *Config) {
				c.Display = Size{240, 240}
				c.Color.Tint = "#00FF00"
			},
		},
		"geometry": {
			content: `
[geometry]
ratio = 0.6
gap = 120.0
`,
			want: func(c *Config) {
				c.Geometry.Ratio = 0.6
				c.Geometry.Gap = 120
			},
		},
		"unknown": {
			content: "[display]\ndepth = 16\n",
			err:     true,
		},
		"invalid tint": {
			content: "[color]\ntint = \"green\"\n",
			err:     true,
		},
		"decreasing levels": {
			content: "[color]\nlevels = [255, 128, 64, 0]\n",
			err:     true,
		},
		"too small": {
			content: "[display]\nwidth = 4\nheight = 4\n",
			err:     true,
		},
	}

	for name, table := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadConfig(writeFile(t, dir, "config.toml", table.content))
			if table.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			want := DefaultConfig()
			table.want(&want)
			assert.Equal(t, want, cfg)
		})
	}
}

func TestLoadConfigHome(t *testing.T) {
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	writeFile(t, dir, "ringtext.toml", "[source]\nwidth = 630\n")

	cfg, err := LoadConfig("~/ringtext.toml")
	require.NoError(t, err)
	assert.Equal(t, 630, cfg.Source.Width)
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, os.IsNotExist(err))
}
