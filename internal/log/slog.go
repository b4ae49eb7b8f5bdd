package log

import (
	"context"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AsSlog returns a slog logger backed by this logger, for libraries that
// accept the standard structured logging interface.
func (l *Logger) AsSlog() *slog.Logger {
	return slog.New(&slogHandler{logger: l})
}

type slogHandler struct {
	logger *Logger
	attrs  []Field
	group  string
}

func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level < slog.LevelDebug+4 && !h.logger.DebugEnabled() {
		return false
	}

	return true
}

func (h *slogHandler) Handle(ctx context.Context, record slog.Record) error {
	fields := make([]Field, 0, record.NumAttrs()+len(h.attrs))
	fields = append(fields, h.attrs...)

	record.Attrs(func(attr slog.Attr) bool {
		fields = append(fields, h.attrToField(attr))
		return true
	})

	switch {
	case record.Level >= slog.LevelError:
		h.logger.Error(ctx, record.Message, fields...)
	case record.Level >= slog.LevelWarn:
		h.logger.Warn(ctx, record.Message, fields...)
	case record.Level >= slog.LevelInfo:
		h.logger.Info(ctx, record.Message, fields...)
	default:
		h.logger.Debug(ctx, record.Message, fields...)
	}

	return nil
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fields := make([]Field, 0, len(h.attrs)+len(attrs))
	fields = append(fields, h.attrs...)

	for _, attr := range attrs {
		fields = append(fields, h.attrToField(attr))
	}

	return &slogHandler{logger: h.logger, attrs: fields, group: h.group}
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	return &slogHandler{logger: h.logger, attrs: h.attrs, group: name}
}

func (h *slogHandler) attrToField(attr slog.Attr) Field {
	key := attr.Key
	if h.group != "" {
		key = h.group + "." + key
	}

	value := attr.Value.Resolve()
	switch value.Kind() {
	case slog.KindString:
		return zap.String(key, value.String())
	case slog.KindInt64:
		return zap.Int64(key, value.Int64())
	case slog.KindBool:
		return zap.Bool(key, value.Bool())
	case slog.KindFloat64:
		return zap.Float64(key, value.Float64())
	case slog.KindDuration:
		return zap.Duration(key, value.Duration())
	case slog.KindTime:
		return zap.Time(key, value.Time())
	default:
		return zapcore.Field{Key: key, Type: zapcore.ReflectType, Interface: value.Any()}
	}
}
