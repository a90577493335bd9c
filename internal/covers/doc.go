// Package covers generates deterministic cover art for posts. Body text is
// reduced to quantifiable features (frequency variance, sentiment polarity,
// topic entropy, keyword density, sentence rhythm), the features map to
// visual properties (palette, shape style, complexity, layers, stroke), and
// a seeded renderer paints a PNG. The same source text always yields the
// same image. The batch service walks the content root, skips posts that
// already declare an image unless forced, and rewrites frontmatter in place
// to reference the generated file.
package covers
