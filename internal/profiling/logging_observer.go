package profiling

import (
	"fmt"
	"log/slog"
)

// LoggingObserver logs every lifecycle event using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a logging observer; a nil logger means slog.Default()
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// OnEvent implements the Observer interface.
// Found dependencies are logged at debug level, everything else at info.
func (lo *LoggingObserver) OnEvent(event Event) {
	attrs := []any{
		slog.String("event", string(event.Type)),
		slog.String("run_id", event.RunID),
		slog.String("kind", string(event.Kind)),
	}
	if event.Relation != "" {
		attrs = append(attrs, slog.String("relation", event.Relation))
	}
	if event.Level > 0 {
		attrs = append(attrs, slog.Int("level", event.Level))
	}

	switch data := event.Data.(type) {
	case LevelStats:
		attrs = append(attrs,
			slog.Int("candidates", data.Candidates),
			slog.Int("pruned", data.Pruned),
			slog.Int("intersections", data.Intersections),
			slog.Int("unique", data.Unique),
			slog.Int("pending", data.Pending),
		)
	case RunSummary:
		attrs = append(attrs,
			slog.Duration("duration", data.Duration),
			slog.Int("results", data.Results),
		)
	case fmt.Stringer:
		attrs = append(attrs, slog.String("data", data.String()))
	case nil:
	default:
		attrs = append(attrs, slog.Any("data", data))
	}

	if event.Type == EventUCCFound || event.Type == EventINDFound {
		lo.logger.Debug("profiling_lifecycle", attrs...)
		return
	}
	lo.logger.Info("profiling_lifecycle", attrs...)
}
