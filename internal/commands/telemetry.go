package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// TelemetryStatus classifies how a command execution ended.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes one command execution. Fields carries the same
// structured keys the handler stamped on the start entry, so start and
// outcome lines correlate in aggregated logs.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is invoked once per execution, after the outcome is known.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

var telemetryEvents = map[TelemetryStatus]string{
	TelemetryStatusSuccess:      "command.execute.success",
	TelemetryStatusFailed:       "command.execute.failed",
	TelemetryStatusContextError: "command.execute.context_error",
}

// DefaultTelemetry logs command outcomes through the supplied logger.
// Handlers fall back to it when no callback is installed.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(_ context.Context, _ T, info TelemetryInfo) {
		event, ok := telemetryEvents[info.Status]
		if !ok {
			event = telemetryEvents[TelemetryStatusFailed]
		}

		entry := logging.WithFields(logger, info.Fields)
		if info.Status == TelemetryStatusSuccess {
			entry.Info(event, "duration_ms", info.Duration.Milliseconds())
			return
		}
		entry.Error(event, "duration_ms", info.Duration.Milliseconds(), "error", info.Error)
	}
}
