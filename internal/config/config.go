// Package config resolves the CLI configuration from flags, environment,
// an optional .env file and folio.yaml, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FOLIO"

// Config is the resolved site configuration.
type Config struct {
	ContentDir  string   `mapstructure:"contentDir" yaml:"contentDir"`
	Extensions  []string `mapstructure:"extensions" yaml:"extensions"`
	Include     string   `mapstructure:"include" yaml:"include,omitempty"`
	BaseURL     string   `mapstructure:"baseURL" yaml:"baseURL"`
	PostsPath   string   `mapstructure:"postsPath" yaml:"postsPath"`
	SiteTitle   string   `mapstructure:"siteTitle" yaml:"siteTitle"`
	Author      string   `mapstructure:"author" yaml:"author,omitempty"`
	Description string   `mapstructure:"description" yaml:"description,omitempty"`
	Addr        string   `mapstructure:"addr" yaml:"addr"`
	FeedLimit   int      `mapstructure:"feedLimit" yaml:"feedLimit"`
}

// keys maps configuration keys to their environment variable suffix and
// the flag that overrides them.
var keys = []struct {
	key  string
	env  string
	flag string
}{
	{"contentDir", "CONTENT_DIR", "content-dir"},
	{"extensions", "EXTENSIONS", "ext"},
	{"include", "INCLUDE", "include"},
	{"baseURL", "BASE_URL", "base-url"},
	{"postsPath", "POSTS_PATH", "posts-path"},
	{"siteTitle", "SITE_TITLE", "site-title"},
	{"author", "AUTHOR", "author"},
	{"description", "DESCRIPTION", "description"},
	{"addr", "ADDR", "addr"},
	{"feedLimit", "FEED_LIMIT", "feed-limit"},
}

// Options tells Load where to look.
type Options struct {
	// File is an explicit config file; it must exist when set.
	File string
	// Dir is searched for folio.yaml and .env when File is empty.
	Dir    string
	Flags  *pflag.FlagSet
	Logger *slog.Logger
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("contentDir", "app/blog/posts")
	v.SetDefault("extensions", []string{".mdx"})
	v.SetDefault("include", "")
	v.SetDefault("baseURL", "http://localhost:3000")
	v.SetDefault("postsPath", "/blog")
	v.SetDefault("siteTitle", "My Portfolio")
	v.SetDefault("author", "")
	v.SetDefault("description", "")
	v.SetDefault("addr", ":3000")
	v.SetDefault("feedLimit", 20)
}

// Load resolves the configuration. A relative contentDir is anchored at the
// directory of the config file that was read, or at Dir.
func Load(opts Options) (Config, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	envFile := filepath.Join(opts.Dir, ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("loading .env failed", "file", envFile, "error", err)
	}

	v := viper.New()
	SetDefaults(v)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.AddConfigPath(opts.Dir)
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}

	for _, k := range keys {
		if err := v.BindEnv(k.key, EnvPrefix+"_"+k.env); err != nil {
			return Config{}, fmt.Errorf("failed to bind env for %s: %w", k.key, err)
		}
		if opts.Flags == nil {
			continue
		}
		if f := opts.Flags.Lookup(k.flag); f != nil {
			if err := v.BindPFlag(k.key, f); err != nil {
				return Config{}, fmt.Errorf("failed to bind flag %s: %w", k.flag, err)
			}
		}
	}

	base := opts.Dir
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || opts.File != "" {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		logger.Debug("no config file found, using defaults and environment", "dir", opts.Dir)
	} else {
		base = filepath.Dir(v.ConfigFileUsed())
		logger.Debug("using config file", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if cfg.ContentDir != "" && !filepath.IsAbs(cfg.ContentDir) && base != "" {
		cfg.ContentDir = filepath.Join(base, cfg.ContentDir)
	}
	if cfg.FeedLimit < 0 {
		return Config{}, fmt.Errorf("feedLimit must not be negative, got %d", cfg.FeedLimit)
	}
	return cfg, nil
}
