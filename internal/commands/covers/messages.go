package coverscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const generateMessageType = "blog.covers.generate"

// GenerateCommand triggers a cover generation batch for every markdown post
// under Dir. Posts that already declare an image are skipped unless Force is
// set; DryRun reports the plan without touching the filesystem.
type GenerateCommand struct {
	// Dir selects the content directory to scan for markdown posts.
	Dir string `json:"dir"`
	// Force regenerates covers for posts that already declare an image.
	Force bool `json:"force,omitempty"`
	// DryRun previews the batch without writing images or rewriting sources.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (GenerateCommand) Type() string { return generateMessageType }

// Validate ensures the content directory is present before handlers execute.
func (cmd GenerateCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Dir, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("blog.covers.generate.dir_required", "dir is required")
			}
			return nil
		})),
	)
}
