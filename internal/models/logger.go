package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// slowQuery is the duration after which queries are logged as warnings.
const slowQuery = 200 * time.Millisecond

// logger writes gorm logs to zerolog. Queries are logged at debug level,
// slow queries as warnings and failed queries as errors.
type logger struct {
	Logger zerolog.Logger
	level  gorm_logger.LogLevel
}

func newLogger(l zerolog.Logger) *logger {
	return &logger{Logger: l.With().Str("component", "gorm").Logger(), level: gorm_logger.Info}
}

func (l *logger) LogMode(level gorm_logger.LogLevel) gorm_logger.Interface {
	c := *l
	c.level = level
	return &c
}

func (l *logger) Info(_ context.Context, s string, args ...any) {
	if l.level >= gorm_logger.Info {
		l.Logger.Info().Msgf(s, args...)
	}
}

func (l *logger) Warn(_ context.Context, s string, args ...any) {
	if l.level >= gorm_logger.Warn {
		l.Logger.Warn().Msgf(s, args...)
	}
}

func (l *logger) Error(_ context.Context, s string, args ...any) {
	if l.level >= gorm_logger.Error {
		l.Logger.Error().Msgf(s, args...)
	}
}

func (l *logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gorm_logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	event := func(e *zerolog.Event) *zerolog.Event {
		return e.Str("sql", sql).Int64("rows", rows).Dur("duration", elapsed)
	}

	switch {
	// Not found and skipped duplicates are part of regular operation
	case err != nil && !errors.Is(err, ErrResourceNotFound) && !errors.Is(err, ErrDuplicateUnreadAlert):
		event(l.Logger.Error().Err(err)).Msg("query failed")
	case elapsed > slowQuery && l.level >= gorm_logger.Warn:
		event(l.Logger.Warn()).Msg("slow query")
	case l.level >= gorm_logger.Info:
		event(l.Logger.Debug()).Msg("query")
	}
}
