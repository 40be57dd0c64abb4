package db

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// DBLogConfig configures the gorm logger that writes through zerolog.
type DBLogConfig struct {
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
	ParameterizedQueries      bool
	LogLevel                  logger.LogLevel
	zeroLogger                zerolog.Logger
}

// NewDBLogger returns a gorm logger emitting structured zerolog events.
func NewDBLogger(config DBLogConfig) logger.Interface {
	return &dbLogger{DBLogConfig: config}
}

func zeroLogToGormLevel(level zerolog.Level) logger.LogLevel {
	switch level {
	case zerolog.TraceLevel, zerolog.DebugLevel, zerolog.InfoLevel:
		return logger.Info
	case zerolog.WarnLevel:
		return logger.Warn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return logger.Error
	case zerolog.Disabled:
		return logger.Silent
	default:
		return logger.Info
	}
}

type dbLogger struct {
	DBLogConfig
}

func (l *dbLogger) LogMode(level logger.LogLevel) logger.Interface {
	newlogger := *l
	newlogger.LogLevel = level
	return &newlogger
}

func (l *dbLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.zeroLogger.Info().Ctx(ctx).Msgf(msg, data...)
}

func (l *dbLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.zeroLogger.Warn().Ctx(ctx).Msgf(msg, data...)
}

func (l *dbLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.zeroLogger.Error().Ctx(ctx).Msgf(msg, data...)
}

// Trace logs failed and slow statements, and every statement at Info level.
func (l *dbLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	var event *zerolog.Event
	switch {
	case err != nil && l.LogLevel >= logger.Error && (!errors.Is(err, gorm.ErrRecordNotFound) || !l.IgnoreRecordNotFoundError):
		event = l.zeroLogger.Error().Err(err)
	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold && l.LogLevel >= logger.Warn:
		event = l.zeroLogger.Warn().Dur("slow_threshold", l.SlowThreshold)
	case l.LogLevel == logger.Info:
		event = l.zeroLogger.Debug()
	default:
		return
	}

	sql, rows := fc()
	event = event.Ctx(ctx).
		Str("caller", utils.FileWithLineNum()).
		Float64("elapsed_ms", float64(elapsed.Nanoseconds())/1e6).
		Str("sql", sql)
	if rows >= 0 {
		event = event.Int64("rows", rows)
	}
	event.Msg("sql")
}

// ParamsFilter hides bind values when parameterized queries are requested.
func (l *dbLogger) ParamsFilter(ctx context.Context, sql string, params ...interface{}) (string, []interface{}) {
	if l.ParameterizedQueries {
		return sql, nil
	}
	return sql, params
}
