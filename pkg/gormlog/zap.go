package gormlog

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"github.com/salamene/horoscope-backend/pkg/logctx"
)

// Logger adapts gorm.io/gorm/logger.Interface onto zap, enriching every line
// with trace_id/user_id pulled from the request context.
type Logger struct {
	base   *zap.SugaredLogger
	config gormlogger.Config
}

func New(base *zap.SugaredLogger) *Logger {
	return &Logger{
		base: base,
		config: gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	}
}

func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cfg := l.config
	cfg.LogLevel = level
	return &Logger{base: l.base, config: cfg}
}

func (l *Logger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.config.LogLevel >= gormlogger.Info {
		logctx.FromCtx(ctx, l.base).Infow(msg, "args", data)
	}
}

func (l *Logger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.config.LogLevel >= gormlogger.Warn {
		logctx.FromCtx(ctx, l.base).Warnw(msg, "args", data)
	}
}

func (l *Logger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.config.LogLevel >= gormlogger.Error {
		logctx.FromCtx(ctx, l.base).Errorw(msg, "args", data)
	}
}

func (l *Logger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.config.LogLevel == gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	lg := logctx.FromCtx(ctx, l.base)
	fields := []interface{}{
		"rows", rows,
		"elapsed_ms", elapsed.Milliseconds(),
		"caller", repoRelative(utils.FileWithLineNum()),
	}
	switch {
	case err != nil && !(l.config.IgnoreRecordNotFoundError && strings.Contains(err.Error(), "record not found")):
		lg.Errorw("gorm_trace", append(fields, "err", err, "sql", sql)...)
	case l.config.SlowThreshold > 0 && elapsed > l.config.SlowThreshold:
		lg.Warnw("gorm_slow", append(fields, "sql", sql)...)
	case l.config.LogLevel >= gormlogger.Info:
		lg.Infow("gorm", append(fields, "sql", sql)...)
	}
}

// repoRelative trims absolute build paths down to internal/..., pkg/..., or
// cmd/... so log lines stay readable across build hosts.
func repoRelative(s string) string {
	p := filepath.ToSlash(s)
	for _, marker := range []string{"/internal/", "/pkg/", "/cmd/"} {
		if i := strings.Index(p, marker); i >= 0 {
			return p[i+1:]
		}
	}
	return p
}
