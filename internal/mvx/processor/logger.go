package processor

import (
	"fmt"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
	"go.uber.org/zap"
)

type zapMessageLogger struct {
	logger *zap.Logger
}

// NewZapMessageLogger adapts a zap logger to the processor's topic logger.
func NewZapMessageLogger(logger *zap.Logger) MessageLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &zapMessageLogger{logger: logger}
}

func (l *zapMessageLogger) LogMessage(topic model.LogTopic, message string) {
	field := zap.String("topic", string(topic))
	switch topic {
	case model.TopicError:
		l.logger.Error(message, field)
	default:
		l.logger.Debug(message, field)
	}
}

type nopMessageLogger struct{}

func (nopMessageLogger) LogMessage(model.LogTopic, string) {}

func (p *Processor) logf(topic model.LogTopic, format string, args ...any) {
	p.messages.LogMessage(topic, fmt.Sprintf(format, args...))
}
