package app

import (
	"go.uber.org/zap"

	"github.com/vcm-medical/vcmclient/domain"
)

// LogSink is the default EventSink: session lifecycle events go to the
// structured log. UI hosts replace it with a sink that drives navigation
// (the SESSION_EXPIRED event is the redirect-to-login trigger).
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a logging event sink.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Publish implements domain.EventSink.
func (s *LogSink) Publish(event domain.AuthEvent) {
	fields := []zap.Field{
		zap.String("type", string(event.Type)),
		zap.String("email", event.Email),
		zap.Bool("success", event.Success),
	}
	if event.ErrorMsg != "" {
		fields = append(fields, zap.String("error", event.ErrorMsg))
	}
	s.logger.Info("auth event", fields...)
}

// Compile-time interface compliance verification
var _ domain.EventSink = (*LogSink)(nil)
