package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	blog "github.com/goliatone/go-blog"
	blogapi "github.com/goliatone/go-blog/internal/http"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/web"
	"github.com/spf13/cobra"
)

var (
	serveAddr    string
	serveContent string
	serveCovers  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the blog pages, JSON API, and quote proxy",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
		if serveContent != "" {
			cfg.Content.Root = serveContent
		}
		if serveCovers != "" {
			cfg.Covers.OutputDir = serveCovers
		}

		module, err := blog.New(cfg)
		if err != nil {
			return err
		}

		handler, err := buildHandler(module, cfg)
		if err != nil {
			return err
		}

		logger := logging.ModuleLogger(module.LoggerProvider(), "blog.server")
		server := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server listening", "addr", cfg.Server.Addr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return fmt.Errorf("server error: %w", err)
		case <-quit:
		}

		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	},
}

// buildHandler mounts the JSON API and the HTML pages on one mux.
func buildHandler(module *blog.Module, cfg blog.Config) (http.Handler, error) {
	mux := http.NewServeMux()

	apiOpts := []blogapi.Option{
		blogapi.WithBasePath(cfg.Server.BasePath),
		blogapi.WithPostService(module.Posts()),
		blogapi.WithLogger(logging.ModuleLogger(module.LoggerProvider(), "blog.http")),
	}
	if module.Quotes() != nil {
		apiOpts = append(apiOpts, blogapi.WithQuoteService(module.Quotes()))
	}
	api := blogapi.NewAPI(apiOpts...)
	if err := api.Register(mux); err != nil {
		return nil, err
	}

	theme, err := web.LoadThemeContext(web.ThemeConfig{
		Dir:               cfg.Theme.Dir,
		Name:              cfg.Theme.Name,
		Variant:           cfg.Theme.Variant,
		CSSVariablePrefix: cfg.Theme.CSSVariablePrefix,
	})
	if err != nil {
		return nil, err
	}

	pages, err := web.NewServer(
		web.WithPostService(module.Posts()),
		web.WithSite(web.SiteInfo{
			Title:   cfg.Site.Title,
			Tagline: cfg.Site.Tagline,
			BaseURL: cfg.Site.BaseURL,
		}),
		web.WithTheme(theme),
		web.WithCoverDir(cfg.Covers.OutputDir, cfg.Covers.URLPrefix),
		web.WithLogger(logging.WebLogger(module.LoggerProvider())),
	)
	if err != nil {
		return nil, err
	}
	if err := pages.Register(mux); err != nil {
		return nil, err
	}

	return mux, nil
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveContent, "content", "", "content directory (overrides config)")
	serveCmd.Flags().StringVar(&serveCovers, "covers", "", "cover output directory (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
