// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package commons

import (
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// SEPARATOR is the conventional delimiter for comma-style env/opts values.
const SEPARATOR = ","

// Logger is the structured logging contract every component depends on.
// It is intentionally narrow (no Sync, no With) so fakes in tests stay cheap.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

type applicationLogger struct {
	sugar *zap.SugaredLogger
}

// Option configures an applicationLogger.
type Option func(*loggerOptions)

type loggerOptions struct {
	name  string
	path  string
	level string
}

func Name(name string) Option { return func(o *loggerOptions) { o.name = name } }
func Path(path string) Option { return func(o *loggerOptions) { o.path = path } }
func Level(level string) Option {
	return func(o *loggerOptions) { o.level = level }
}

// NewApplicationLogger builds a zap-backed Logger that writes JSON lines to
// a rotated file under Path() (named after Name()) and to stderr, at the
// given Level(). Missing options fall back to sane defaults so every
// component, including one-off CLI tools, can construct a Logger with zero
// to three options.
func NewApplicationLogger(opts ...Option) (Logger, error) {
	cfg := loggerOptions{name: "meetingbot", path: ".", level: "info"}
	for _, opt := range opts {
		opt(&cfg)
	}

	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.level)); err != nil {
		level = zapcore.InfoLevel
	}

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(cfg.path, cfg.name+".log"),
		MaxSize:    50, // MB
		MaxBackups: 5,
		MaxAge:     14, // days
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), fileWriter, level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(zapcore.AddSync(newStderrWriter())), level),
	)

	logger := zap.New(core).Named(cfg.name)
	return &applicationLogger{sugar: logger.Sugar()}, nil
}

func (l *applicationLogger) Debug(args ...interface{})                 { l.sugar.Debug(args...) }
func (l *applicationLogger) Debugf(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }
func (l *applicationLogger) Info(args ...interface{})                  { l.sugar.Info(args...) }
func (l *applicationLogger) Infof(format string, args ...interface{})  { l.sugar.Infof(format, args...) }
func (l *applicationLogger) Warn(args ...interface{})                  { l.sugar.Warn(args...) }
func (l *applicationLogger) Warnf(format string, args ...interface{})  { l.sugar.Warnf(format, args...) }
func (l *applicationLogger) Error(args ...interface{})                 { l.sugar.Error(args...) }
func (l *applicationLogger) Errorf(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }
func (l *applicationLogger) Fatalf(format string, args ...interface{}) { l.sugar.Fatalf(format, args...) }
