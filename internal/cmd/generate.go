package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/d-kuro/git-sitemap/internal/collector"
	"github.com/d-kuro/git-sitemap/internal/config"
	"github.com/d-kuro/git-sitemap/internal/generate"
	"github.com/d-kuro/git-sitemap/internal/history"
	"github.com/d-kuro/git-sitemap/internal/logging"
	"github.com/d-kuro/git-sitemap/internal/security"
)

// generateFlags maps command-line flags to config keys.
var generateFlags = map[string]string{
	"base-url":        config.KeyBaseURL,
	"output":          config.KeyOutput,
	"ext":             config.KeyExtensions,
	"private-prefix":  config.KeyPrivatePrefix,
	"index-file":      config.KeyIndexFile,
	"skip-dir":        config.KeySkipDirs,
	"timestamp":       config.KeyTimestamp,
	"git-timeout":     config.KeyGitTimeout,
	"jobs":            config.KeyJobs,
	"respect-noindex": config.KeyRespectNoindex,
	flagLogLevel:      config.KeyLogLevel,
}

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [root]",
		Short: "Generate a sitemap for a site directory",
		Long: `Generate walks root (default: the working directory), collects every public
page and writes sitemap.xml. Each page is dated with its last git commit,
falling back to today when no history is available.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerate,
	}

	def := collector.DefaultConfig()
	flags := cmd.Flags()
	flags.String("base-url", "", "Absolute base URL of the site (required)")
	flags.StringP("output", "o", "", "Output file, or - for stdout (default: <root>/sitemap.xml)")
	flags.StringSlice("ext", def.Extensions, "Page file extensions")
	flags.String("private-prefix", def.PrivatePrefix, "File name prefix that marks non-public pages")
	flags.String("index-file", def.IndexFile, "Top-level file mapped to the bare base URL")
	flags.StringSlice("skip-dir", def.SkipDirs, "Directory names never descended into")
	flags.String("timestamp", string(history.AuthorDate), "Commit date to use (author or committer)")
	flags.Duration("git-timeout", history.DefaultGitTimeout, "Timeout for a single git query")
	flags.IntP("jobs", "j", def.Jobs, "Concurrent git lookups")
	flags.Bool("respect-noindex", false, "Skip pages with a robots noindex meta tag")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	v := config.New()
	if err := bindFlags(v, cmd); err != nil {
		return err
	}
	if len(args) == 1 {
		v.Set(config.KeyRoot, args[0])
	}

	cfgFile, _ := cmd.Flags().GetString(flagConfig)
	cfg, err := config.Load(v, cfgFile, v.GetString(config.KeyRoot), ".")
	if err != nil {
		return err
	}

	validator := security.NewDefaultValidator()
	if err := cfg.Validate(validator); err != nil {
		return err
	}
	if cfg.Root, err = validator.SanitizePath(cfg.Root); err != nil {
		return fmt.Errorf("invalid root: %w", err)
	}

	logger := logging.NewLoggerWithWriter(cmd.ErrOrStderr(), cfg.LogLevel)

	opts := generate.Options{
		Root:       cfg.Root,
		Collector:  cfg.Collector(),
		Timestamp:  history.TimestampSource(cfg.Timestamp),
		GitTimeout: cfg.GitTimeout,
		Logger:     logger,
	}
	if cfg.Output == config.StdoutOutput {
		opts.Writer = cmd.OutOrStdout()
	} else {
		if opts.Output, err = validator.SanitizePath(cfg.Output); err != nil {
			return fmt.Errorf("invalid output: %w", err)
		}
	}

	res, err := generate.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	logger.Debug("Sitemap run finished",
		slog.String("run", res.RunID),
		slog.Duration("duration", res.Duration))

	if opts.Writer == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d URL(s) to %s\n", len(res.URLs), res.Output)
	}
	return nil
}

// bindFlags binds every generate flag present on cmd to its config key.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range generateFlags {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
