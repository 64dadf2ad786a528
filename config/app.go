package config

import (
	"os"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// AppConfig holds global application configuration.
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName  string `mapstructure:"APP_NAME"`
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"APP_ENV"`
	Debug    bool   `mapstructure:"DEBUG"`
	MediaDir string `mapstructure:"MEDIA_DIR"`
}

// LoadAppConfig decodes the process environment into AppConfig.
func LoadAppConfig() {
	once.Do(func() {
		env := make(map[string]interface{})
		for _, kv := range os.Environ() {
			if i := strings.Index(kv, "="); i > 0 {
				env[kv[:i]] = kv[i+1:]
			}
		}
		cfg := &Config{}
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
		})
		if err == nil {
			_ = dec.Decode(env)
		}
		if cfg.Port == "" {
			cfg.Port = "8080"
		}
		if cfg.MediaDir == "" {
			cfg.MediaDir = "media/equipment"
		}
		AppConfig = cfg
	})
}
