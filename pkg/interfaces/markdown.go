package interfaces

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should keep parser instances reusable and expose extension
// toggles so hosts can tailor rendering without swapping the whole pipeline.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// FrontMatter models the metadata block at the top of a post file. Date is
// kept as the raw string found in the source because listings order posts by
// lexical comparison of that value; parsing it into a time would alter the
// published contract. Unknown keys are preserved in Custom so tools that
// rewrite frontmatter (cover generation) do not drop author data.
type FrontMatter struct {
	Title   string         `yaml:"title" json:"title"`
	Date    string         `yaml:"date" json:"date"`
	Excerpt string         `yaml:"excerpt" json:"excerpt"`
	Image   string         `yaml:"image" json:"image"`
	Custom  map[string]any `yaml:",inline" json:"custom"`
	Raw     map[string]any `yaml:"-" json:"raw"`
}
