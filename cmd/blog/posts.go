package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	blog "github.com/goliatone/go-blog"
	"github.com/spf13/cobra"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Post inspection tools",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the post index, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		module, err := blog.New(appConfig)
		if err != nil {
			return err
		}

		list, err := module.Posts().List(cmd.Context())
		if err != nil {
			return err
		}

		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no posts found")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		defer w.Flush()

		fmt.Fprintln(w, "DATE\tSLUG\tTITLE\tCOVER")
		for _, meta := range list {
			cover := "-"
			if meta.Image != "" {
				cover = meta.Image
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", meta.Date, meta.Slug, meta.Title, cover)
		}
		return nil
	},
}

var postsNewCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Scaffold a post source file from a title",
	Long: `Derives the slug from the title, writes <slug>.md under the content
root with frontmatter for today, and leaves the body empty for the author.
An existing post with the same slug is never overwritten.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		module, err := blog.New(appConfig)
		if err != nil {
			return err
		}

		entry, err := module.Posts().Create(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", entry.Path)
		return nil
	},
}

func init() {
	postsCmd.AddCommand(postsListCmd)
	postsCmd.AddCommand(postsNewCmd)
	rootCmd.AddCommand(postsCmd)
}
