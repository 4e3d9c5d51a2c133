package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	Logger      = zap.NewNop()
	Sugar       = Logger.Sugar()
	atomicLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
)

// Options controls how InitLogger builds the global logger
type Options struct {
	Development bool
	Level       string
	// File enables the rotated JSON log file in production mode
	File string
}

// InitLogger initializes the global logger
func InitLogger(opts Options) error {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}
	atomicLevel.SetLevel(level)

	var l *zap.Logger
	if opts.Development {
		l, err = newDevelopmentLogger()
	} else {
		l, err = NewProductionLogger(opts.File)
	}
	if err != nil {
		return err
	}

	Logger = l
	Sugar = l.Sugar()
	zap.ReplaceGlobals(l)
	return nil
}

// ParseLevel maps a textual level to zapcore, defaulting to info
func ParseLevel(level string) (zapcore.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

func newDevelopmentLogger() (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig = encoderConfig()
	config.Level = atomicLevel
	return config.Build(
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
}

// NewProductionLogger writes JSON to a rotated file and console lines to stderr.
// Stdout is reserved for the report output.
func NewProductionLogger(logPath string) (*zap.Logger, error) {
	encCfg := encoderConfig()
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		atomicLevel,
	)

	if logPath == "" {
		return zap.New(consoleCore, zap.AddCaller(), zap.AddCallerSkip(1)), nil
	}

	if err := createLogDir(logPath); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    20, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	})

	encCfg.TimeKey = "timestamp"
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, atomicLevel)

	return zap.New(zapcore.NewTee(fileCore, consoleCore),
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(fmt.Sprintf("%-5s", level.CapitalString()))
	}
	cfg.EncodeDuration = zapcore.MillisDurationEncoder
	cfg.MessageKey = "msg"
	cfg.LevelKey = "level"
	cfg.CallerKey = "caller"
	cfg.EncodeCaller = func(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(formatCallerPath(caller))
	}
	return cfg
}

// Info logs a message at InfoLevel
func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

// Warn logs a message at WarnLevel
func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

// Debug logs a message at DebugLevel
func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

// Sync flushes any buffered log entries
func Sync() error {
	if Logger != nil {
		return Logger.Sync()
	}
	return nil
}

func createLogDir(logPath string) error {
	dir := filepath.Dir(logPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// formatCallerPath keeps package/file.go:line padded to a fixed width
func formatCallerPath(caller zapcore.EntryCaller) string {
	trimmed := strings.TrimPrefix(caller.TrimmedPath(), "pkg/")
	trimmed = strings.TrimPrefix(trimmed, "internal/")
	trimmed = strings.TrimPrefix(trimmed, "cmd/")

	const callerWidth = 24
	if len(trimmed) > callerWidth {
		trimmed = "..." + trimmed[len(trimmed)-(callerWidth-3):]
	}
	return fmt.Sprintf("%-*s", callerWidth, trimmed)
}
