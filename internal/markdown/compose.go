package markdown

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// composeEnvelope fixes the emit order of the known keys. Unknown keys ride
// along inline so a rewrite never loses author metadata.
type composeEnvelope struct {
	Title   string         `yaml:"title,omitempty"`
	Date    string         `yaml:"date,omitempty"`
	Excerpt string         `yaml:"excerpt,omitempty"`
	Image   string         `yaml:"image,omitempty"`
	Custom  map[string]any `yaml:",inline"`
}

// ComposeSource rebuilds a markdown source file from frontmatter and body,
// the inverse of ParseFrontMatter. Every tool that writes a source file
// (cover rewrites, post scaffolding) goes through this so what lands on disk
// parses back to the same metadata. The body keeps exactly one blank line
// below the closing delimiter.
func ComposeSource(fm interfaces.FrontMatter, body []byte) ([]byte, error) {
	env := composeEnvelope{
		Title:   fm.Title,
		Date:    fm.Date,
		Excerpt: fm.Excerpt,
		Image:   fm.Image,
		Custom:  fm.Custom,
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(env); err != nil {
		return nil, fmt.Errorf("compose frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("compose frontmatter: %w", err)
	}

	buf.WriteString("---\n\n")
	buf.Write(bytes.TrimLeft(body, "\n"))
	return buf.Bytes(), nil
}
