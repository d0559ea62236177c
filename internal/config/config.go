// Package config loads sitemap settings from defaults, an optional config
// file, SITEMAP_* environment variables and command-line flags.
package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/d-kuro/git-sitemap/internal/collector"
	"github.com/d-kuro/git-sitemap/internal/errors"
	"github.com/d-kuro/git-sitemap/internal/history"
	"github.com/d-kuro/git-sitemap/internal/security"
)

// Setting keys.
const (
	KeyRoot           = "root"
	KeyOutput         = "output"
	KeyBaseURL        = "base_url"
	KeyExtensions     = "extensions"
	KeyPrivatePrefix  = "private_prefix"
	KeyIndexFile      = "index_file"
	KeySkipDirs       = "skip_dirs"
	KeyTimestamp      = "timestamp"
	KeyGitTimeout     = "git_timeout"
	KeyJobs           = "jobs"
	KeyRespectNoindex = "respect_noindex"
	KeyLogLevel       = "log_level"
)

// FileName is the config file base name searched for without --config.
const FileName = "sitemap"

// DefaultOutputName is written inside the root when no output is given.
const DefaultOutputName = "sitemap.xml"

// StdoutOutput selects standard output instead of a file.
const StdoutOutput = "-"

// Config holds every setting of a sitemap run.
type Config struct {
	Root           string        `mapstructure:"root"`
	Output         string        `mapstructure:"output"`
	BaseURL        string        `mapstructure:"base_url"`
	Extensions     []string      `mapstructure:"extensions"`
	PrivatePrefix  string        `mapstructure:"private_prefix"`
	IndexFile      string        `mapstructure:"index_file"`
	SkipDirs       []string      `mapstructure:"skip_dirs"`
	Timestamp      string        `mapstructure:"timestamp"`
	GitTimeout     time.Duration `mapstructure:"git_timeout"`
	Jobs           int           `mapstructure:"jobs"`
	RespectNoindex bool          `mapstructure:"respect_noindex"`
	LogLevel       string        `mapstructure:"log_level"`
}

// New returns a viper instance with defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()

	def := collector.DefaultConfig()
	v.SetDefault(KeyRoot, ".")
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyBaseURL, "")
	v.SetDefault(KeyExtensions, def.Extensions)
	v.SetDefault(KeyPrivatePrefix, def.PrivatePrefix)
	v.SetDefault(KeyIndexFile, def.IndexFile)
	v.SetDefault(KeySkipDirs, def.SkipDirs)
	v.SetDefault(KeyTimestamp, string(history.AuthorDate))
	v.SetDefault(KeyGitTimeout, history.DefaultGitTimeout)
	v.SetDefault(KeyJobs, def.Jobs)
	v.SetDefault(KeyRespectNoindex, false)
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix("SITEMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyLogLevel, "SITEMAP_LOG_LEVEL", "LOG_LEVEL")

	return v
}

// Load reads the optional config file and decodes v into a Config.
// When configFile is empty, sitemap.{yaml,json,toml} is searched in dirs.
func Load(v *viper.Viper, configFile string, dirs ...string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.ConfigurationWithCause("read config file "+configFile, err)
		}
	} else {
		v.SetConfigName(FileName)
		for _, dir := range dirs {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.ConfigurationWithCause("read config file", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.ConfigurationWithCause("decode settings", err)
	}

	return &cfg, nil
}

// Validate checks the settings and fills derived values.
func (c *Config) Validate(validator security.Validator) error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.Configuration("base URL is required (--base-url or SITEMAP_BASE_URL)")
	}
	if err := validator.ValidateURL(c.BaseURL); err != nil {
		return errors.ConfigurationWithCause("invalid base URL", err)
	}

	if !history.TimestampSource(c.Timestamp).Valid() {
		return errors.Configuration("timestamp must be \"author\" or \"committer\"")
	}
	if c.Jobs < 1 {
		return errors.Configuration("jobs must be at least 1")
	}
	if c.GitTimeout <= 0 {
		return errors.Configuration("git timeout must be positive")
	}
	if len(c.Extensions) == 0 {
		return errors.Configuration("at least one extension is required")
	}
	for i, ext := range c.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return errors.Configuration("extensions must not be empty")
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extensions[i] = ext
	}
	if c.IndexFile == "" || strings.ContainsAny(c.IndexFile, `/\`) {
		return errors.Configuration("index file must be a plain file name")
	}

	root, err := filepath.Abs(c.Root)
	if err != nil {
		return errors.ConfigurationWithCause("resolve root", err)
	}
	c.Root = root

	if c.Output == "" {
		c.Output = filepath.Join(c.Root, DefaultOutputName)
	} else if c.Output != StdoutOutput {
		out, err := filepath.Abs(c.Output)
		if err != nil {
			return errors.ConfigurationWithCause("resolve output", err)
		}
		c.Output = out
	}

	return nil
}

// Collector returns the collector settings.
func (c *Config) Collector() collector.Config {
	return collector.Config{
		BaseURL:        c.BaseURL,
		Extensions:     c.Extensions,
		PrivatePrefix:  c.PrivatePrefix,
		IndexFile:      c.IndexFile,
		SkipDirs:       c.SkipDirs,
		RespectNoindex: c.RespectNoindex,
		Jobs:           c.Jobs,
	}
}
