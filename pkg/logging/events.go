package logging

import (
	"aicontext/pkg/aggregate"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// EventReporter logs aggregation events through zap.
type EventReporter struct {
	logger *zap.Logger
}

// NewEventReporter returns a reporter writing to logger.
func NewEventReporter(logger *zap.Logger) *EventReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventReporter{logger: logger}
}

// Report implements aggregate.Reporter.
func (r *EventReporter) Report(ev aggregate.Event) {
	switch ev.Kind {
	case aggregate.PatternScanned:
		r.logger.Info("Scanned pattern", zap.String("pattern", ev.Pattern), zap.Int("newFiles", ev.Count))
	case aggregate.PatternExcluded:
		r.logger.Info("Applied exclusion pattern", zap.String("pattern", ev.Pattern), zap.Int("removedFiles", ev.Count))
	case aggregate.PatternSkipped:
		r.logger.Warn("Skipping unusable pattern", zap.String("pattern", ev.Pattern), zap.Error(ev.Err))
	case aggregate.FileIgnored:
		r.logger.Debug("Ignored matched file", zap.String("pattern", ev.Pattern), zap.String("file", ev.Path))
	case aggregate.FileSkipped:
		r.logger.Warn("Skipping unreadable file", zap.String("file", ev.Path), zap.Error(ev.Err))
	case aggregate.NoPatterns:
		r.logger.Warn("No patterns provided; writing empty context")
	case aggregate.NoMatches:
		r.logger.Warn("No files matched the provided patterns; writing empty context")
	case aggregate.OutputWritten:
		r.logger.Info("Context written",
			zap.String("outputFile", ev.Path),
			zap.Int("totalFiles", ev.Count),
			zap.String("size", humanize.Bytes(uint64(ev.Bytes))))
	default:
		r.logger.Debug("Unhandled aggregation event", zap.Stringer("kind", ev.Kind))
	}
}
