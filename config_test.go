package licensing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, "LicenseClient/1.0", cfg.UserAgent)
	assert.False(t, cfg.InsecureSkipVerify)
	assert.Empty(t, cfg.BaseURL)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "license.toml")
	data := `
base_url = "https://licensing.example.com/"
connect_timeout = "3s"
read_timeout = "1500ms"
user_agent = "MyApp/3.1"
insecure_skip_verify = true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, Config{
		BaseURL:            "https://licensing.example.com/",
		ConnectTimeout:     3 * time.Second,
		ReadTimeout:        1500 * time.Millisecond,
		UserAgent:          "MyApp/3.1",
		InsecureSkipVerify: true,
	}, cfg)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestConfigFromTree(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Config
		wantErr bool
	}{
		{
			name: "only base url keeps defaults",
			data: `base_url = "http://localhost:8000"`,
			want: Config{
				BaseURL:        "http://localhost:8000",
				ConnectTimeout: DefaultConnectTimeout,
				ReadTimeout:    DefaultReadTimeout,
				UserAgent:      DefaultUserAgent,
			},
		},
		{name: "bad duration", data: `read_timeout = "soon"`, wantErr: true},
		{name: "negative duration", data: `connect_timeout = "-1s"`, wantErr: true},
		{name: "duration as number", data: `connect_timeout = 10`, wantErr: true},
		{name: "flag as string", data: `insecure_skip_verify = "yes"`, wantErr: true},
		{name: "url as number", data: `base_url = 8000`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := toml.Load(tt.data)
			require.NoError(t, err)

			cfg, err := configFromTree(tree)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}
