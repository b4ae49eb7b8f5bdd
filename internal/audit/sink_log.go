package audit

import (
	"context"

	"github.com/datawarden/datawarden/internal/log"
)

// LogSink writes audit events as structured log entries.
type LogSink struct {
	logger *log.Logger
}

func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Record(ctx context.Context, event Event) {
	defer func() {
		// An audit write failure never reaches the caller.
		if r := recover(); r != nil {
			log.Warn(ctx, "audit log sink panic", log.Any("recovered", r))
		}
	}()

	logger := s.logger
	if logger == nil {
		logger = log.GetGlobalLogger()
	}

	logger.Info(ctx, "[AUDIT]",
		log.Time("timestamp", event.Timestamp),
		log.String("user_id", event.UserID),
		log.String("resource_type", event.ResourceType),
		log.String("resource_name", event.ResourceName),
		log.String("action", event.Action),
		log.String("decision", event.Decision),
		log.String("reason", event.Reason),
		log.String("persona", event.Persona),
		log.Strings("groups", event.Groups),
		log.String("session_id", event.SessionID),
	)
}
