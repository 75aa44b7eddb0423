package logger

import (
	"context"

	"go.uber.org/zap"
)

var global *zap.SugaredLogger

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	global = l.Sugar()
}

// SetLogger replaces the package logger, used by main after config is read.
func SetLogger(l *zap.Logger) {
	global = l.Sugar()
}

type ctxKey struct{}

// WithRequestID returns a ctx whose log lines carry the request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

func fromCtx(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
			return global.With("request_id", id)
		}
	}
	return global
}

func Debug(ctx context.Context, msg string) {
	fromCtx(ctx).Debug(msg)
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Debugf(format, args...)
}

func Info(ctx context.Context, msg string) {
	fromCtx(ctx).Info(msg)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Warnf(format, args...)
}

func Error(ctx context.Context, msg string) {
	fromCtx(ctx).Error(msg)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Errorf(format, args...)
}

func Fatal(ctx context.Context, err error) {
	if err == nil {
		return
	}
	fromCtx(ctx).Fatal(err.Error())
}
