// Package log implements the default `log` namespace: a thin forwarder to
// the ambient zap logger (internal/logger), giving scripts log.info/warn/
// error without introducing a second logging system. Ported from the
// teacher's internal/log.Log interface, which recorded entries for later
// retrieval; here script log calls go straight to the same structured
// logger the rest of the engine uses.
package log

import (
	"go.uber.org/zap"

	"github.com/JungleDome/FirScript/internal/engine"
)

// Log is the default `log` namespace.
type Log struct {
	logger *zap.Logger
	source string
}

// New constructs a Log namespace that tags every entry with source (the
// script's display name).
func New(logger *zap.Logger, source string) *Log {
	return &Log{logger: logger, source: source}
}

// Attr implements engine.Namespace.
func (l *Log) Attr(name string) (any, bool) {
	switch name {
	case "info":
		return engine.BuiltinFunc(l.level(l.logger.Info)), true
	case "warn":
		return engine.BuiltinFunc(l.level(l.logger.Warn)), true
	case "error":
		return engine.BuiltinFunc(l.level(l.logger.Error)), true
	case "debug":
		return engine.BuiltinFunc(l.level(l.logger.Debug)), true
	default:
		return nil, false
	}
}

func (l *Log) level(fn func(string, ...zap.Field)) engine.BuiltinFunc {
	return func(args []any, kwargs map[string]any) (any, error) {
		msg := ""
		if len(args) > 0 {
			if s, ok := args[0].(string); ok {
				msg = s
			}
		}

		fields := make([]zap.Field, 0, len(kwargs)+1)
		fields = append(fields, zap.String("source", l.source))

		for k, v := range kwargs {
			fields = append(fields, zap.Any(k, v))
		}

		fn(msg, fields...)

		return nil, nil
	}
}
