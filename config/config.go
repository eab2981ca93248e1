package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	originhttp "github.com/bucketlabs/s3origin/http"
	"github.com/bucketlabs/s3origin/store"
)

// Config is the root configuration struct for s3origin.
type Config struct {
	Server ServerConfig          `mapstructure:"server"`
	Origin OriginConfig          `mapstructure:"origin"`
	Store  store.Config          `mapstructure:"store"`
	CORS   originhttp.CORSConfig `mapstructure:"cors"`
	Log    LogConfig             `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// OriginConfig holds the origin's bucket/prefix/limit settings.
type OriginConfig struct {
	Bucket        string `mapstructure:"bucket" validate:"required"`
	Prefix        string `mapstructure:"prefix"`
	MaxSize       int64  `mapstructure:"max_size" validate:"min=0"`
	PruneSegments int    `mapstructure:"prune_segments" validate:"min=0"`
	Mode          string `mapstructure:"mode" validate:"required,oneof=flat static spa"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"bucket":     "origin.bucket",
	"prefix":     "origin.prefix",
	"max-size":   "origin.max_size",
	"mode":       "origin.mode",
	"store-type": "store.type",
	"endpoint":   "store.endpoint",
	"region":     "store.region",
	"port":       "server.port",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5917)

	// Registered empty so env binding can see the key; validation still
	// rejects a missing bucket.
	v.SetDefault("origin.bucket", "")
	v.SetDefault("origin.prefix", "")
	v.SetDefault("origin.max_size", 0) // 0 means no limit
	v.SetDefault("origin.prune_segments", 0)
	v.SetDefault("origin.mode", "flat")

	v.SetDefault("store.type", "aws")
	v.SetDefault("store.region", "us-east-1")
	v.SetDefault("store.use_ssl", true)

	v.SetDefault("log.level", "info")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("S3ORIGIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
