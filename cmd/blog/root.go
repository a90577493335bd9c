package main

import (
	"fmt"
	"os"
	"strings"

	blog "github.com/goliatone/go-blog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string
var appConfig blog.Config

var rootCmd = &cobra.Command{
	Use:   "blog",
	Short: "Markdown blog engine with generative covers",
	Long: `blog serves a directory of markdown posts as HTML pages and a JSON API,
proxies a quote endpoint, and batch-generates cover art derived from each
post's own text.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./blog.yaml)")
}

func initializeConfig(_ *cobra.Command) error {
	v := viper.New()

	setDefaults(v, blog.DefaultConfig())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("blog")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("BLOG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFile != "" {
				return fmt.Errorf("config file %s not found: %w", cfgFile, err)
			}
			// No file is fine: defaults plus env cover everything.
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return nil
}

// setDefaults registers every leaf key so env-only overrides survive
// Unmarshal.
func setDefaults(v *viper.Viper, cfg blog.Config) {
	v.SetDefault("site.title", cfg.Site.Title)
	v.SetDefault("site.tagline", cfg.Site.Tagline)
	v.SetDefault("site.baseurl", cfg.Site.BaseURL)
	v.SetDefault("content.root", cfg.Content.Root)
	v.SetDefault("markdown.extensions", cfg.Markdown.Extensions)
	v.SetDefault("markdown.sanitize", cfg.Markdown.Sanitize)
	v.SetDefault("markdown.hardwraps", cfg.Markdown.HardWraps)
	v.SetDefault("markdown.safemode", cfg.Markdown.SafeMode)
	v.SetDefault("covers.outputdir", cfg.Covers.OutputDir)
	v.SetDefault("covers.urlprefix", cfg.Covers.URLPrefix)
	v.SetDefault("covers.width", cfg.Covers.Width)
	v.SetDefault("covers.height", cfg.Covers.Height)
	v.SetDefault("covers.fontpath", cfg.Covers.FontPath)
	v.SetDefault("quotes.enabled", cfg.Quotes.Enabled)
	v.SetDefault("quotes.url", cfg.Quotes.URL)
	v.SetDefault("quotes.timeout", cfg.Quotes.Timeout)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.basepath", cfg.Server.BasePath)
	v.SetDefault("theme.dir", cfg.Theme.Dir)
	v.SetDefault("theme.name", cfg.Theme.Name)
	v.SetDefault("theme.variant", cfg.Theme.Variant)
	v.SetDefault("theme.cssvariableprefix", cfg.Theme.CSSVariablePrefix)
	v.SetDefault("logging.provider", cfg.Logging.Provider)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.addsource", cfg.Logging.AddSource)
	v.SetDefault("logging.focus", cfg.Logging.Focus)
}
