package conf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/datawarden/datawarden/internal/audit"
	"github.com/datawarden/datawarden/internal/authz"
	"github.com/datawarden/datawarden/internal/dispatch"
	"github.com/datawarden/datawarden/internal/log"
	"github.com/datawarden/datawarden/internal/server"
)

// Config is the root configuration document. Each field is provided
// individually to the fx graph.
type Config struct {
	fx.Out

	Server   server.Config   `conf:"server"   yaml:"server"   json:"server"`
	Log      log.Config      `conf:"log"      yaml:"log"      json:"log"`
	Authz    authz.Config    `conf:"authz"    yaml:"authz"    json:"authz"`
	Dispatch dispatch.Config `conf:"dispatch" yaml:"dispatch" json:"dispatch"`
	Audit    audit.Config    `conf:"audit"    yaml:"audit"    json:"audit"`
}

// Load reads the configuration from datawarden.yml and DATAWARDEN_* env
// vars. A missing config file is not an error; defaults apply.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("datawarden")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./conf")
	v.AddConfigPath("/etc/datawarden")
	v.SetEnvPrefix("DATAWARDEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var config Config

	err := v.Unmarshal(&config, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "conf"
	})
	if err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	// An empty persona map would deny everything, which makes a fresh
	// deployment useless. Fall back to the built-in policy.
	if len(config.Authz.Personas) == 0 {
		config.Authz = authz.DefaultConfig()
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.name", "datawarden")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.dispatch_timeout", "120s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("dispatch.max_concurrent", 8)
	v.SetDefault("dispatch.default_timeout", "30s")
	v.SetDefault("dispatch.default_max_retries", 3)
	v.SetDefault("dispatch.base_backoff", "1s")

	v.SetDefault("audit.recent_capacity", 1024)
}
