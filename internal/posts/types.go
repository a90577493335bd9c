package posts

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// DateLayout is the canonical sortable date format for post frontmatter.
// Listings order posts by lexical comparison of the raw date string, which
// is only chronologically correct when every post shares this layout.
const DateLayout = "2006-01-02"

// PostMeta carries everything the listing view needs. Every field is
// populated: absent source values are replaced by documented defaults
// (title falls back to the slug, date to the current day, excerpt to the
// empty string). Image stays empty when the post declares no cover.
type PostMeta struct {
	ID      uuid.UUID `json:"id"`
	Slug    string    `json:"slug"`
	Title   string    `json:"title"`
	Date    string    `json:"date"`
	Excerpt string    `json:"excerpt"`
	Image   string    `json:"image,omitempty"`
}

// Post extends PostMeta with the rendered body for the detail view.
type Post struct {
	PostMeta
	HTML string `json:"html"`
}

// Validate enforces the invariants a well-formed post must satisfy before
// tools rewrite or republish it: a present slug and a date in the canonical
// sortable layout. The read path never rejects posts on these grounds; it
// only logs, so a sloppy date cannot break a listing.
func (m PostMeta) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Slug, validation.Required, validation.By(func(value any) error {
			if !IsValidSlug(value.(string)) {
				return validation.NewError("blog.posts.slug_invalid", "slug contains invalid characters")
			}
			return nil
		})),
		validation.Field(&m.Date, validation.Required, validation.Date(DateLayout).Error("date must use the "+DateLayout+" layout")),
	)
}

// ValidDate reports whether value parses under the canonical date layout.
func ValidDate(value string) bool {
	_, err := time.Parse(DateLayout, value)
	return err == nil
}
