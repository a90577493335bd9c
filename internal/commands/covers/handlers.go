package coverscmd

import (
	"context"
	"time"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/covers"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const generateOperation = "covers.generate"

// batchTimeout is generous: a batch renders one PNG per uncovered post.
const batchTimeout = 5 * time.Minute

var _ command.Commander[GenerateCommand] = (*GenerateHandler)(nil)

// GenerateHandler drives cover batches via the shared command handler foundation.
type GenerateHandler struct {
	inner *commands.Handler[GenerateCommand]
}

// NewGenerateHandler creates a handler bound to the supplied covers service.
func NewGenerateHandler(service covers.Service, logger interfaces.Logger, opts ...commands.HandlerOption[GenerateCommand]) *GenerateHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg GenerateCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := service.Generate(ctx, covers.GenerateOptions{
			Dir:    msg.Dir,
			Force:  msg.Force,
			DryRun: msg.DryRun,
		})
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"generated_count": len(result.Generated),
			"skipped_count":   len(result.Skipped),
			"failed_count":    len(result.Failed),
			"dry_run":         msg.DryRun,
			"force":           msg.Force,
		}).Info("covers.command.generate.completed")

		return result.Err()
	}

	handlerOpts := []commands.HandlerOption[GenerateCommand]{
		commands.WithLogger[GenerateCommand](baseLogger),
		commands.WithOperation[GenerateCommand](generateOperation),
		commands.WithTimeout[GenerateCommand](batchTimeout),
		commands.WithMessageFields(func(msg GenerateCommand) map[string]any {
			fields := map[string]any{
				"dir": msg.Dir,
			}
			if msg.Force {
				fields["force"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[GenerateCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &GenerateHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[GenerateCommand].
func (h *GenerateHandler) Execute(ctx context.Context, msg GenerateCommand) error {
	return h.inner.Execute(ctx, msg)
}
