package licensing

import (
	"time"

	"github.com/pelletier/go-toml"
	"github.com/rotisserie/eris"
)

const (
	DefaultConnectTimeout = 10 * time.Second
	DefaultReadTimeout    = 10 * time.Second
	DefaultUserAgent      = "LicenseClient/1.0"
)

// Config holds the settings of a Client. The zero value of every field except
// BaseURL falls back to its default in New.
type Config struct {
	// BaseURL is the license server root, e.g. https://licensing.example.com.
	BaseURL string

	// ConnectTimeout bounds dialing and the TLS handshake.
	ConnectTimeout time.Duration

	// ReadTimeout bounds the wait for the response after the request is sent.
	ReadTimeout time.Duration

	UserAgent          string
	InsecureSkipVerify bool
}

// DefaultConfig returns a Config with every default filled in and no BaseURL.
func DefaultConfig() Config {
	return Config{
		ConnectTimeout: DefaultConnectTimeout,
		ReadTimeout:    DefaultReadTimeout,
		UserAgent:      DefaultUserAgent,
	}
}

func (c Config) withDefaults() Config {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return c
}

// LoadConfig reads a TOML file on top of DefaultConfig. Recognised keys are
// base_url, connect_timeout, read_timeout, user_agent and
// insecure_skip_verify; timeouts are duration strings such as "5s".
func LoadConfig(path string) (Config, error) {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return Config{}, eris.Wrapf(err, "unable to load config %s", path)
	}
	return configFromTree(tree)
}

func configFromTree(tree *toml.Tree) (Config, error) {
	cfg := DefaultConfig()

	var err error
	if cfg.BaseURL, err = treeString(tree, "base_url", cfg.BaseURL); err != nil {
		return Config{}, err
	}
	if cfg.UserAgent, err = treeString(tree, "user_agent", cfg.UserAgent); err != nil {
		return Config{}, err
	}
	if cfg.ConnectTimeout, err = treeDuration(tree, "connect_timeout", cfg.ConnectTimeout); err != nil {
		return Config{}, err
	}
	if cfg.ReadTimeout, err = treeDuration(tree, "read_timeout", cfg.ReadTimeout); err != nil {
		return Config{}, err
	}
	if tree.Has("insecure_skip_verify") {
		v, ok := tree.Get("insecure_skip_verify").(bool)
		if !ok {
			return Config{}, eris.New("insecure_skip_verify must be a boolean")
		}
		cfg.InsecureSkipVerify = v
	}
	return cfg, nil
}

func treeString(tree *toml.Tree, key, def string) (string, error) {
	if !tree.Has(key) {
		return def, nil
	}
	v, ok := tree.Get(key).(string)
	if !ok {
		return "", eris.Errorf("%s must be a string", key)
	}
	return v, nil
}

func treeDuration(tree *toml.Tree, key string, def time.Duration) (time.Duration, error) {
	s, err := treeString(tree, key, "")
	if err != nil {
		return 0, err
	}
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s", key)
	}
	if d <= 0 {
		return 0, eris.Errorf("%s must be positive", key)
	}
	return d, nil
}
