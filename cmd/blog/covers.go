package main

import (
	blog "github.com/goliatone/go-blog"
	coverscmd "github.com/goliatone/go-blog/internal/commands/covers"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/spf13/cobra"
)

var (
	coversForce   bool
	coversDryRun  bool
	coversContent string
)

var coversCmd = &cobra.Command{
	Use:   "covers",
	Short: "Generative cover image tools",
}

var coversGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate cover art for posts that lack one",
	Long: `Analyzes each post's text, derives a palette and composition from it,
renders a deterministic PNG, and writes the image path back into the post's
front matter. Posts that already declare an image are skipped unless --force
is given. Exits non-zero when any post fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		module, err := blog.New(appConfig)
		if err != nil {
			return err
		}

		handler := coverscmd.NewGenerateHandler(
			module.Covers(),
			logging.CoversLogger(module.LoggerProvider()),
		)

		msg := coverscmd.GenerateCommand{
			Dir:    appConfig.Content.Root,
			Force:  coversForce,
			DryRun: coversDryRun,
		}
		if coversContent != "" {
			msg.Dir = coversContent
		}

		return handler.Execute(cmd.Context(), msg)
	},
}

func init() {
	coversGenerateCmd.Flags().BoolVar(&coversForce, "force", false, "regenerate covers for posts that already have one")
	coversGenerateCmd.Flags().BoolVar(&coversDryRun, "dry-run", false, "analyze posts without writing any files")
	coversGenerateCmd.Flags().StringVar(&coversContent, "content", "", "content directory (overrides config)")
	coversCmd.AddCommand(coversGenerateCmd)
	rootCmd.AddCommand(coversCmd)
}
